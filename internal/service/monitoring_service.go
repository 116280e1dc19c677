package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Zulu-012/luct-reporting-system/internal/dto"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	"github.com/Zulu-012/luct-reporting-system/internal/navigation"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
	"github.com/Zulu-012/luct-reporting-system/pkg/export"
	"github.com/Zulu-012/luct-reporting-system/pkg/response"
)

// MonitoringGateway is the slice of the data gateway the monitoring
// service consumes.
type MonitoringGateway interface {
	FetchLectures(ctx context.Context) ([]models.LectureRecord, error)
	LecturesByLecturer(ctx context.Context, lecturerID int) ([]models.LectureRecord, error)
	CoursesByProgramLeader(ctx context.Context, leaderID int) ([]models.Course, error)
	LecturesByCourseIDs(ctx context.Context, courseIDs []int) ([]models.LectureRecord, error)
	UpdateLecture(ctx context.Context, id int, patch models.LecturePatch) error
	DeleteLecture(ctx context.Context, id int) error
}

// MonitoringService loads role-scoped lecture lists from the gateway and
// runs the in-memory analytics pipeline over them: aggregate, filter, sort,
// export. The pipeline stages never mutate their input slice.
type MonitoringService struct {
	gateway    MonitoringGateway
	cache      *CacheService
	logger     *zap.Logger
	cacheTTL   time.Duration
	topCourses int
	filePrefix string
}

// MonitoringServiceParams bundles dependencies for NewMonitoringService.
type MonitoringServiceParams struct {
	Gateway      MonitoringGateway
	Cache        *CacheService
	Logger       *zap.Logger
	CacheTTL     time.Duration
	TopCourses   int
	ExportPrefix string
}

// NewMonitoringService constructs a monitoring service with sane defaults.
func NewMonitoringService(p MonitoringServiceParams) *MonitoringService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.TopCourses <= 0 {
		p.TopCourses = 3
	}
	if p.ExportPrefix == "" {
		p.ExportPrefix = "lectures"
	}
	return &MonitoringService{
		gateway:    p.Gateway,
		cache:      p.Cache,
		logger:     p.Logger,
		cacheTTL:   p.CacheTTL,
		topCourses: p.TopCourses,
		filePrefix: p.ExportPrefix,
	}
}

type monitoringPayload struct {
	Lectures []models.LectureRecord `json:"lectures"`
	Courses  []models.Course        `json:"courses"`
}

// Load fetches the lecture set the session's role is entitled to see.
// Lecturers get their own submissions, program leaders the lectures of
// their courses (plus the course list for the course filter), and every
// other recognised role the full institution list. Unknown roles load
// nothing. Gateway failures return an empty list plus a load-failure
// error so callers can tell an outage from an empty institution.
func (s *MonitoringService) Load(ctx context.Context, sess models.Session) ([]models.LectureRecord, []models.Course, error) {
	key := fmt.Sprintf("monitoring:lectures:%s:%d", sess.User.Role, sess.User.ID)
	if s.cache.Enabled() {
		var cached monitoringPayload
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			response.SetCacheHit(ctx, true)
			return cached.Lectures, cached.Courses, nil
		}
		response.SetCacheHit(ctx, false)
	}

	var (
		lectures []models.LectureRecord
		courses  []models.Course
		err      error
	)
	switch sess.User.Role {
	case models.RoleLecturer:
		lectures, err = s.gateway.LecturesByLecturer(ctx, sess.User.ID)
	case models.RoleProgramLeader:
		courses, err = s.gateway.CoursesByProgramLeader(ctx, sess.User.ID)
		if err == nil {
			ids := make([]int, 0, len(courses))
			for _, c := range courses {
				ids = append(ids, c.ID)
			}
			lectures, err = s.gateway.LecturesByCourseIDs(ctx, ids)
		}
	case models.RolePrincipalLecturer, models.RoleAdmin, models.RoleStudent:
		lectures, err = s.gateway.FetchLectures(ctx)
	default:
		return []models.LectureRecord{}, []models.Course{}, nil
	}
	if err != nil {
		s.logger.Warn("monitoring load failed",
			zap.String("role", string(sess.User.Role)),
			zap.Int("user_id", sess.User.ID),
			zap.Error(err))
		return []models.LectureRecord{}, []models.Course{}, appErrors.Wrap(err,
			appErrors.ErrLoadFailed.Code, appErrors.ErrLoadFailed.Status, "failed to load lectures data")
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, monitoringPayload{Lectures: lectures, Courses: courses}, s.cacheTTL)
	}
	return lectures, courses, nil
}

// Aggregate computes the monitoring stat cards over the unfiltered list.
// Average attendance divides the summed per-lecture rates by the total
// lecture count, so zero-enrolment lectures drag the average down rather
// than being skipped.
func (s *MonitoringService) Aggregate(lectures []models.LectureRecord) dto.MonitoringAnalytics {
	if len(lectures) == 0 {
		return dto.MonitoringAnalytics{TopCourses: []dto.CourseAttendance{}}
	}

	var rateSum float64
	var totalPresent int
	for _, l := range lectures {
		if l.TotalRegisteredStudent > 0 {
			rateSum += float64(l.ActualStudentsPresent) / float64(l.TotalRegisteredStudent)
		}
		totalPresent += l.ActualStudentsPresent
	}

	type courseAcc struct {
		registered int
		present    int
		count      int
	}
	order := make([]string, 0)
	acc := make(map[string]*courseAcc)
	for _, l := range lectures {
		a, ok := acc[l.CourseName]
		if !ok {
			a = &courseAcc{}
			acc[l.CourseName] = a
			order = append(order, l.CourseName)
		}
		a.registered += l.TotalRegisteredStudent
		a.present += l.ActualStudentsPresent
		a.count++
	}

	top := make([]dto.CourseAttendance, 0, len(order))
	for _, name := range order {
		a := acc[name]
		var rate float64
		if a.registered > 0 {
			rate = float64(a.present) / float64(a.registered) * 100
		}
		top = append(top, dto.CourseAttendance{Name: name, Attendance: rate, Lectures: a.count})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Attendance > top[j].Attendance })
	if len(top) > s.topCourses {
		top = top[:s.topCourses]
	}

	return dto.MonitoringAnalytics{
		TotalLectures:     len(lectures),
		AverageAttendance: rateSum / float64(len(lectures)) * 100,
		TotalStudents:     totalPresent,
		TopCourses:        top,
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Filter applies the filter set conjunctively and returns a fresh slice.
func (s *MonitoringService) Filter(lectures []models.LectureRecord, f dto.LectureFilter) []models.LectureRecord {
	out := make([]models.LectureRecord, 0, len(lectures))
	for _, l := range lectures {
		if f.Search != "" &&
			!containsFold(l.CourseName, f.Search) &&
			!containsFold(l.LecturerName, f.Search) &&
			!containsFold(l.CourseCode, f.Search) &&
			!containsFold(l.ClassName, f.Search) {
			continue
		}
		if f.Class != "" && !containsFold(l.ClassName, f.Class) {
			continue
		}
		if f.Date != "" && l.DateOfLecture != f.Date {
			continue
		}
		if f.Faculty != "" && !containsFold(l.FacultyName, f.Faculty) {
			continue
		}
		if f.Course != "" {
			id, idErr := strconv.Atoi(f.Course)
			if !(idErr == nil && l.CourseID == id) && !containsFold(l.CourseName, f.Course) {
				continue
			}
		}
		if f.Status != "" && f.Status != "all" {
			if string(l.AttendanceStatus()) != f.Status {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

// ToggleSort advances the sort state for a clicked column: a repeated
// ascending click flips to descending, anything else starts ascending.
func ToggleSort(current dto.SortSpec, key string) dto.SortSpec {
	if current.Key == key && current.Ascending {
		return dto.SortSpec{Key: key, Ascending: false}
	}
	return dto.SortSpec{Key: key, Ascending: true}
}

// Sort orders a copy of the list by the sort spec. An empty or unrecognised
// key returns the input order untouched. Equal keys keep their relative
// order.
func (s *MonitoringService) Sort(lectures []models.LectureRecord, spec dto.SortSpec) []models.LectureRecord {
	cmp := comparatorFor(spec.Key)
	if cmp == nil {
		return lectures
	}
	out := make([]models.LectureRecord, len(lectures))
	copy(out, lectures)
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if spec.Ascending {
			return c < 0
		}
		return c > 0
	})
	return out
}

func comparatorFor(key string) func(a, b models.LectureRecord) int {
	switch key {
	case "course_name":
		return func(a, b models.LectureRecord) int { return strings.Compare(a.CourseName, b.CourseName) }
	case "course_code":
		return func(a, b models.LectureRecord) int { return strings.Compare(a.CourseCode, b.CourseCode) }
	case "lecturer_name":
		return func(a, b models.LectureRecord) int { return strings.Compare(a.LecturerName, b.LecturerName) }
	case "class_name":
		return func(a, b models.LectureRecord) int { return strings.Compare(a.ClassName, b.ClassName) }
	case "date_of_lecture":
		return func(a, b models.LectureRecord) int { return strings.Compare(a.DateOfLecture, b.DateOfLecture) }
	case "week_of_reporting":
		return func(a, b models.LectureRecord) int { return strings.Compare(a.WeekOfReporting, b.WeekOfReporting) }
	case "actual_students_present":
		return func(a, b models.LectureRecord) int { return a.ActualStudentsPresent - b.ActualStudentsPresent }
	case "total_registered_students":
		return func(a, b models.LectureRecord) int { return a.TotalRegisteredStudent - b.TotalRegisteredStudent }
	case "attendance":
		return func(a, b models.LectureRecord) int {
			switch ar, br := a.AttendanceRate(), b.AttendanceRate(); {
			case ar < br:
				return -1
			case ar > br:
				return 1
			default:
				return 0
			}
		}
	case "id":
		return func(a, b models.LectureRecord) int { return a.ID - b.ID }
	}
	return nil
}

// View runs the full pipeline for one request: load, aggregate over the
// unfiltered set, then filter and sort for the table. A failed load still
// renders: the response carries an empty table plus an inline load error
// instead of failing the whole request.
func (s *MonitoringService) View(ctx context.Context, sess models.Session, q dto.MonitoringQuery) (*dto.MonitoringResponse, error) {
	lectures, courses, err := s.Load(ctx, sess)
	var loadErr *appErrors.Error
	if err != nil {
		loadErr = appErrors.FromError(err)
	}
	if courses == nil {
		courses = []models.Course{}
	}

	filtered := s.Filter(lectures, q.LectureFilter)
	sorted := s.Sort(filtered, q.Sort())

	return &dto.MonitoringResponse{
		Lectures:    sorted,
		Analytics:   s.Aggregate(lectures),
		Permissions: navigation.PermissionsFor(sess.User.Role, navigation.ViewMonitoring),
		Faculties:   distinct(lectures, func(l models.LectureRecord) string { return l.FacultyName }),
		Classes:     distinct(lectures, func(l models.LectureRecord) string { return l.ClassName }),
		Courses:     courses,
		LoadError:   loadErr,
	}, nil
}

func distinct(lectures []models.LectureRecord, pick func(models.LectureRecord) string) []string {
	seen := make(map[string]struct{}, len(lectures))
	out := make([]string, 0)
	for _, l := range lectures {
		v := pick(l)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Update applies a patch to a lecture record. The role must hold edit
// rights on the monitoring view, and lecturers may only touch their own
// submissions.
func (s *MonitoringService) Update(ctx context.Context, sess models.Session, lectureID int, patch models.LecturePatch) error {
	if !navigation.PermissionsFor(sess.User.Role, navigation.ViewMonitoring).CanEdit {
		return appErrors.ErrForbidden
	}
	if err := s.requireOwnership(ctx, sess, lectureID); err != nil {
		return err
	}
	if err := s.gateway.UpdateLecture(ctx, lectureID, patch); err != nil {
		return err
	}
	return s.invalidate(ctx)
}

// Delete removes a lecture record under the same ownership rules.
func (s *MonitoringService) Delete(ctx context.Context, sess models.Session, lectureID int) error {
	if !navigation.PermissionsFor(sess.User.Role, navigation.ViewMonitoring).CanDelete {
		return appErrors.ErrForbidden
	}
	if err := s.requireOwnership(ctx, sess, lectureID); err != nil {
		return err
	}
	if err := s.gateway.DeleteLecture(ctx, lectureID); err != nil {
		return err
	}
	return s.invalidate(ctx)
}

func (s *MonitoringService) requireOwnership(ctx context.Context, sess models.Session, lectureID int) error {
	if sess.User.Role != models.RoleLecturer {
		return nil
	}
	own, err := s.gateway.LecturesByLecturer(ctx, sess.User.ID)
	if err != nil {
		return err
	}
	for _, l := range own {
		if l.ID == lectureID {
			return nil
		}
	}
	return appErrors.ErrForbidden
}

func (s *MonitoringService) invalidate(ctx context.Context) error {
	if !s.cache.Enabled() {
		return nil
	}
	if err := s.cache.Invalidate(ctx, "monitoring:*"); err != nil {
		return err
	}
	return s.cache.Invalidate(ctx, "dashboard:*")
}

// ExportDataset flattens the (already filtered and sorted) list for the
// CSV and PDF exporters.
func (s *MonitoringService) ExportDataset(lectures []models.LectureRecord) export.Dataset {
	rows := make([][]string, 0, len(lectures))
	for _, l := range lectures {
		rows = append(rows, []string{
			strconv.Itoa(l.ID),
			l.DateOfLecture,
			l.CourseCode,
			l.CourseName,
			l.ClassName,
			l.LecturerName,
			l.WeekOfReporting,
			strconv.Itoa(l.ActualStudentsPresent),
			strconv.Itoa(l.TotalRegisteredStudent),
			fmt.Sprintf("%.1f", l.AttendanceRate()),
			l.TopicTaught,
		})
	}
	return export.Dataset{
		Headers: []string{
			"ID", "Date", "Course Code", "Course Name", "Class", "Lecturer",
			"Week", "Present", "Registered", "Attendance %", "Topic",
		},
		Rows: rows,
	}
}

// ExportFilename builds the role-stamped export name, without extension.
func (s *MonitoringService) ExportFilename(role models.Role, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s", s.filePrefix, role, now.UTC().Format("2006-01-02"))
}
