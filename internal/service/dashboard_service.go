package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zulu-012/luct-reporting-system/internal/dto"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	"github.com/Zulu-012/luct-reporting-system/internal/navigation"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
	"github.com/Zulu-012/luct-reporting-system/pkg/response"
)

// DashboardGateway is the slice of the data gateway the dashboards read
// from.
type DashboardGateway interface {
	Classes(ctx context.Context) ([]models.Class, error)
	ClassByID(ctx context.Context, id int) (*models.Class, error)
	Courses(ctx context.Context) ([]models.Course, error)
	CoursesByProgramLeader(ctx context.Context, leaderID int) ([]models.Course, error)
	FetchLectures(ctx context.Context) ([]models.LectureRecord, error)
	LecturesByClass(ctx context.Context, classID int) ([]models.LectureRecord, error)
	LecturesByLecturer(ctx context.Context, lecturerID int) ([]models.LectureRecord, error)
	AssignmentsByLecturer(ctx context.Context, lecturerID int) ([]models.Assignment, error)
	RatingsByLecturer(ctx context.Context, lecturerID int) ([]models.Rating, error)
	GetRating(ctx context.Context, lectureID int) (*models.RatingSummary, error)
	PrincipalReports(ctx context.Context) (*models.PrincipalReport, error)
	ProgramStudents(ctx context.Context, leaderID int) ([]models.User, error)
	FacultyByProgram(ctx context.Context, leaderID int) ([]models.User, error)
	UsersByRole(ctx context.Context, role string) ([]models.User, error)
}

// DashboardService composes the per-role landing payloads. Independent
// gateway reads for one dashboard run concurrently and fail as a batch;
// the student portal is the exception, where per-class and per-rating
// failures are skipped so a partial portal still renders.
type DashboardService struct {
	gateway       DashboardGateway
	cache         *CacheService
	logger        *zap.Logger
	cacheTTL      time.Duration
	recentLimit   int
	upcomingScope time.Duration
	now           func() time.Time
}

// DashboardServiceParams bundles dependencies for NewDashboardService.
type DashboardServiceParams struct {
	Gateway       DashboardGateway
	Cache         *CacheService
	Logger        *zap.Logger
	CacheTTL      time.Duration
	RecentLimit   int
	UpcomingScope time.Duration
	Now           func() time.Time
}

// NewDashboardService constructs a dashboard service.
func NewDashboardService(p DashboardServiceParams) *DashboardService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.RecentLimit <= 0 {
		p.RecentLimit = 3
	}
	if p.UpcomingScope <= 0 {
		p.UpcomingScope = 7 * 24 * time.Hour
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &DashboardService{
		gateway:       p.Gateway,
		cache:         p.Cache,
		logger:        p.Logger,
		cacheTTL:      p.CacheTTL,
		recentLimit:   p.RecentLimit,
		upcomingScope: p.UpcomingScope,
		now:           p.Now,
	}
}

// Load builds the dashboard for the session's role. Unknown roles get the
// menu-less unrecognized-role payload rather than an error page.
func (s *DashboardService) Load(ctx context.Context, sess models.Session) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{
		Role:        sess.User.Role,
		RoleDisplay: sess.User.Role.Display(),
		Menu:        navigation.MenuFor(sess.User.Role),
		DefaultView: navigation.DefaultView(sess.User.Role),
	}
	if !sess.User.Role.Valid() {
		return resp, nil
	}

	key := fmt.Sprintf("dashboard:%s:%d", sess.User.Role, sess.User.ID)
	if s.cache.Enabled() {
		var cached dto.DashboardResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			response.SetCacheHit(ctx, true)
			return &cached, nil
		}
		response.SetCacheHit(ctx, false)
	}

	var err error
	switch sess.User.Role {
	case models.RoleStudent:
		resp.Student, err = s.studentDashboard(ctx)
	case models.RoleLecturer:
		resp.Lecturer, err = s.lecturerDashboard(ctx, sess.User.ID)
	case models.RolePrincipalLecturer:
		resp.Principal, err = s.principalDashboard(ctx)
	case models.RoleProgramLeader:
		resp.ProgramLeader, err = s.programLeaderDashboard(ctx, sess.User.ID)
	case models.RoleAdmin:
		resp.Admin, err = s.adminDashboard(ctx)
	}
	if err != nil {
		s.logger.Warn("dashboard load degraded",
			zap.String("role", string(sess.User.Role)),
			zap.Int("user_id", sess.User.ID),
			zap.Error(err))
		s.zeroFill(resp)
		return resp, nil
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, resp, s.cacheTTL)
	}
	return resp, nil
}

// zeroFill keeps the response shape intact when a load fails, mirroring
// the empty stat cards the views fall back to.
func (s *DashboardService) zeroFill(resp *dto.DashboardResponse) {
	switch resp.Role {
	case models.RoleStudent:
		resp.Student = &dto.StudentDashboard{RecentLectures: []dto.RecentLecture{}}
	case models.RoleLecturer:
		resp.Lecturer = &dto.LecturerDashboard{}
	case models.RolePrincipalLecturer:
		resp.Principal = &dto.PrincipalDashboard{}
	case models.RoleProgramLeader:
		resp.ProgramLeader = &dto.ProgramLeaderDashboard{}
	case models.RoleAdmin:
		resp.Admin = &dto.AdminDashboard{}
	}
}

func (s *DashboardService) studentDashboard(ctx context.Context) (*dto.StudentDashboard, error) {
	classes, err := s.gateway.Classes(ctx)
	if err != nil {
		return nil, err
	}

	// A class whose lecture list cannot be loaded is skipped, not fatal.
	var all []models.LectureRecord
	for _, cls := range classes {
		lectures, err := s.gateway.LecturesByClass(ctx, cls.ID)
		if err != nil {
			s.logger.Warn("skipping class lectures", zap.Int("class_id", cls.ID), zap.Error(err))
			continue
		}
		all = append(all, lectures...)
	}

	today := s.now().UTC().Format("2006-01-02")
	past := make([]models.LectureRecord, 0, len(all))
	for _, l := range all {
		if l.DateOfLecture != "" && l.DateOfLecture <= today {
			past = append(past, l)
		}
	}

	attended := 0
	for _, l := range past {
		if l.ActualStudentsPresent > 0 {
			attended++
		}
	}

	// Rating lookups run concurrently; a failed or empty lookup leaves
	// that lecture out of the average and counts it as pending.
	summaries := make([]*models.RatingSummary, len(past))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, l := range past {
		i, l := i, l
		g.Go(func() error {
			summary, err := s.gateway.GetRating(gctx, l.ID)
			if err != nil {
				s.logger.Warn("skipping lecture rating", zap.Int("lecture_id", l.ID), zap.Error(err))
				return nil
			}
			mu.Lock()
			summaries[i] = summary
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var ratingSum float64
	rated := 0
	for _, summary := range summaries {
		if summary != nil && summary.AverageRating > 0 {
			ratingSum += summary.AverageRating
			rated++
		}
	}
	var average float64
	if rated > 0 {
		average = math.Round(ratingSum/float64(rated)*10) / 10
	}

	recent := make([]dto.RecentLecture, 0, s.recentLimit)
	for _, l := range past {
		if len(recent) == s.recentLimit {
			break
		}
		recent = append(recent, dto.RecentLecture{
			ID:         l.ID,
			Title:      l.CourseName,
			Date:       l.DateOfLecture,
			Lecturer:   l.LecturerName,
			Attendance: fmt.Sprintf("%d/%d", l.ActualStudentsPresent, l.TotalRegisteredStudent),
		})
	}

	pending := len(past) - rated
	if pending < 0 {
		pending = 0
	}

	return &dto.StudentDashboard{
		TotalLectures:    len(past),
		AttendedLectures: attended,
		AverageRating:    average,
		PendingRatings:   pending,
		RecentLectures:   recent,
	}, nil
}

func (s *DashboardService) lecturerDashboard(ctx context.Context, lecturerID int) (*dto.LecturerDashboard, error) {
	var (
		assignments []models.Assignment
		lectures    []models.LectureRecord
		ratings     []models.Rating
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		assignments, err = s.gateway.AssignmentsByLecturer(gctx, lecturerID)
		return err
	})
	g.Go(func() (err error) {
		lectures, err = s.gateway.LecturesByLecturer(gctx, lecturerID)
		return err
	})
	g.Go(func() (err error) {
		ratings, err = s.gateway.RatingsByLecturer(gctx, lecturerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[int]struct{}, len(assignments))
	classIDs := make([]int, 0, len(assignments))
	for _, a := range assignments {
		if _, ok := seen[a.ClassID]; ok {
			continue
		}
		seen[a.ClassID] = struct{}{}
		classIDs = append(classIDs, a.ClassID)
	}

	// Lecture dates are YYYY-MM-DD strings, so the window comparison is
	// lexicographic. Only lectures scheduled within the upcoming scope
	// count toward the stat card.
	today := s.now().UTC().Format("2006-01-02")
	horizon := s.now().UTC().Add(s.upcomingScope).Format("2006-01-02")
	upcoming := 0
	for _, l := range lectures {
		if l.DateOfLecture > today && l.DateOfLecture <= horizon {
			upcoming++
		}
	}

	classes := make([]*models.Class, len(classIDs))
	cg, cgctx := errgroup.WithContext(ctx)
	cg.SetLimit(8)
	for i, id := range classIDs {
		i, id := i, id
		cg.Go(func() error {
			cls, err := s.gateway.ClassByID(cgctx, id)
			if err != nil {
				return err
			}
			classes[i] = cls
			return nil
		})
	}
	if err := cg.Wait(); err != nil {
		return nil, err
	}

	studentsTaught := 0
	for _, cls := range classes {
		if cls != nil {
			studentsTaught += cls.TotalRegisteredStudent
		}
	}

	var average float64
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Rating
		}
		average = math.Round(float64(sum)/float64(len(ratings))*10) / 10
	}

	return &dto.LecturerDashboard{
		TotalClasses:     len(classIDs),
		UpcomingLectures: upcoming,
		StudentsTaught:   studentsTaught,
		AverageRating:    average,
	}, nil
}

func (s *DashboardService) principalDashboard(ctx context.Context) (*dto.PrincipalDashboard, error) {
	report, err := s.gateway.PrincipalReports(ctx)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, appErrors.ErrLoadFailed
	}
	return &dto.PrincipalDashboard{InstitutionStats: report.InstitutionStats}, nil
}

func (s *DashboardService) programLeaderDashboard(ctx context.Context, leaderID int) (*dto.ProgramLeaderDashboard, error) {
	var (
		students []models.User
		faculty  []models.User
		courses  []models.Course
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = s.gateway.ProgramStudents(gctx, leaderID)
		return err
	})
	g.Go(func() (err error) {
		faculty, err = s.gateway.FacultyByProgram(gctx, leaderID)
		return err
	})
	g.Go(func() (err error) {
		courses, err = s.gateway.CoursesByProgramLeader(gctx, leaderID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.ProgramLeaderDashboard{
		Students: len(students),
		Faculty:  len(faculty),
		Courses:  len(courses),
	}, nil
}

func (s *DashboardService) adminDashboard(ctx context.Context) (*dto.AdminDashboard, error) {
	var (
		users    []models.User
		courses  []models.Course
		classes  []models.Class
		lectures []models.LectureRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.gateway.UsersByRole(gctx, "all")
		return err
	})
	g.Go(func() (err error) {
		courses, err = s.gateway.Courses(gctx)
		return err
	})
	g.Go(func() (err error) {
		classes, err = s.gateway.Classes(gctx)
		return err
	})
	g.Go(func() (err error) {
		lectures, err = s.gateway.FetchLectures(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.AdminDashboard{
		TotalUsers:    len(users),
		TotalCourses:  len(courses),
		TotalClasses:  len(classes),
		TotalLectures: len(lectures),
	}, nil
}
