package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zulu-012/luct-reporting-system/internal/dto"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	"github.com/Zulu-012/luct-reporting-system/internal/schedule"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
)

// ClassGateway is the slice of the data gateway the classes view uses.
type ClassGateway interface {
	Classes(ctx context.Context) ([]models.Class, error)
	AllFaculties(ctx context.Context) ([]models.Faculty, error)
	LecturesByLecturer(ctx context.Context, lecturerID int) ([]models.LectureRecord, error)
}

// ClassService serves the classes view: the class list with derived
// status and timetable fields, faculty names resolved, and aggregate
// stats over whatever the current filter leaves visible.
type ClassService struct {
	gateway ClassGateway
	logger  *zap.Logger
	now     func() time.Time
}

// ClassServiceParams bundles dependencies for NewClassService.
type ClassServiceParams struct {
	Gateway ClassGateway
	Logger  *zap.Logger
	Now     func() time.Time
}

// NewClassService constructs a class service.
func NewClassService(p ClassServiceParams) *ClassService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &ClassService{gateway: p.Gateway, logger: p.Logger, now: p.Now}
}

// Load fetches classes and faculties and applies role scoping. Lecturers
// only see classes they have submitted lectures for; when their lecture
// list cannot be loaded, or is empty, they see no classes at all. All
// other roles see every class.
func (s *ClassService) Load(ctx context.Context, sess models.Session, filter dto.ClassFilter) (*dto.ClassesResponse, error) {
	var (
		classes   []models.Class
		faculties []models.Faculty
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		classes, err = s.gateway.Classes(gctx)
		return err
	})
	g.Go(func() (err error) {
		faculties, err = s.gateway.AllFaculties(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrLoadFailed.Code, appErrors.ErrLoadFailed.Status, "failed to load classes")
	}

	if sess.User.Role == models.RoleLecturer {
		classes = s.scopeToLecturer(ctx, sess.User.ID, classes)
	}

	filtered := s.filter(classes, filter)

	views := make([]dto.ClassView, 0, len(filtered))
	totalStudents := 0
	now := s.now()
	for _, cls := range filtered {
		views = append(views, dto.ClassView{
			Class:           cls,
			FacultyDisplay:  facultyName(faculties, cls),
			Status:          cls.StatusAt(now),
			ScheduleDisplay: schedule.Display(cls.ScheduledTime),
			ScheduleDays:    schedule.Weekdays(cls.ScheduledTime),
		})
		totalStudents += cls.TotalRegisteredStudent
	}

	stats := dto.ClassStats{
		TotalClasses:  len(filtered),
		TotalStudents: totalStudents,
		ActiveClasses: len(filtered),
	}
	if stats.TotalClasses > 0 {
		stats.AverageClassSize = int(math.Round(float64(totalStudents) / float64(stats.TotalClasses)))
	}

	return &dto.ClassesResponse{Classes: views, Stats: stats, Faculties: faculties}, nil
}

func (s *ClassService) scopeToLecturer(ctx context.Context, lecturerID int, classes []models.Class) []models.Class {
	lectures, err := s.gateway.LecturesByLecturer(ctx, lecturerID)
	if err != nil {
		s.logger.Warn("lecturer class scoping failed", zap.Int("lecturer_id", lecturerID), zap.Error(err))
		return nil
	}
	if len(lectures) == 0 {
		return nil
	}
	taught := make(map[int]struct{}, len(lectures))
	for _, l := range lectures {
		taught[l.ClassID] = struct{}{}
	}
	out := make([]models.Class, 0, len(classes))
	for _, cls := range classes {
		if _, ok := taught[cls.ID]; ok {
			out = append(out, cls)
		}
	}
	return out
}

func (s *ClassService) filter(classes []models.Class, f dto.ClassFilter) []models.Class {
	now := s.now()
	out := make([]models.Class, 0, len(classes))
	for _, cls := range classes {
		if f.Faculty != "" && f.Faculty != "all" {
			if cls.FacultyID == 0 || strconv.Itoa(cls.FacultyID) != f.Faculty {
				continue
			}
		}
		if f.Status != "" && f.Status != "all" {
			if string(cls.StatusAt(now)) != f.Status {
				continue
			}
		}
		out = append(out, cls)
	}
	return out
}

func facultyName(faculties []models.Faculty, cls models.Class) string {
	if cls.FacultyName != "" {
		return cls.FacultyName
	}
	if cls.FacultyID == 0 {
		return "No Faculty"
	}
	for _, f := range faculties {
		if f.ID == cls.FacultyID {
			return f.Name
		}
	}
	return "Unknown Faculty"
}
