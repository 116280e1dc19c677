package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zulu-012/luct-reporting-system/internal/dto"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
)

type fakeMonitoringGateway struct {
	all        []models.LectureRecord
	byLecturer map[int][]models.LectureRecord
	courses    map[int][]models.Course
	byCourses  []models.LectureRecord

	fetchErr    error
	updated     []int
	deleted     []int
	requestedID []int
}

func (f *fakeMonitoringGateway) FetchLectures(ctx context.Context) ([]models.LectureRecord, error) {
	return f.all, f.fetchErr
}

func (f *fakeMonitoringGateway) LecturesByLecturer(ctx context.Context, lecturerID int) ([]models.LectureRecord, error) {
	return f.byLecturer[lecturerID], nil
}

func (f *fakeMonitoringGateway) CoursesByProgramLeader(ctx context.Context, leaderID int) ([]models.Course, error) {
	return f.courses[leaderID], nil
}

func (f *fakeMonitoringGateway) LecturesByCourseIDs(ctx context.Context, courseIDs []int) ([]models.LectureRecord, error) {
	f.requestedID = courseIDs
	return f.byCourses, nil
}

func (f *fakeMonitoringGateway) UpdateLecture(ctx context.Context, id int, patch models.LecturePatch) error {
	f.updated = append(f.updated, id)
	return nil
}

func (f *fakeMonitoringGateway) DeleteLecture(ctx context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func lecture(id int, course string, present, registered int) models.LectureRecord {
	return models.LectureRecord{
		ID:                     id,
		CourseName:             course,
		ActualStudentsPresent:  present,
		TotalRegisteredStudent: registered,
	}
}

func newMonitoringService(gw MonitoringGateway) *MonitoringService {
	return NewMonitoringService(MonitoringServiceParams{Gateway: gw})
}

func sessionFor(role models.Role, id int) models.Session {
	return models.Session{User: models.User{ID: id, Role: role}}
}

func TestMonitoringLoadScopesByRole(t *testing.T) {
	all := []models.LectureRecord{lecture(1, "A", 10, 20), lecture(2, "B", 5, 20)}
	own := []models.LectureRecord{lecture(3, "C", 8, 10)}
	gw := &fakeMonitoringGateway{
		all:        all,
		byLecturer: map[int][]models.LectureRecord{7: own},
		courses:    map[int][]models.Course{9: {{ID: 4}, {ID: 5}}},
		byCourses:  []models.LectureRecord{lecture(6, "D", 9, 30)},
	}
	svc := newMonitoringService(gw)

	t.Run("lecturer sees only own submissions", func(t *testing.T) {
		lectures, _, err := svc.Load(context.Background(), sessionFor(models.RoleLecturer, 7))
		require.NoError(t, err)
		assert.Equal(t, own, lectures)
	})

	t.Run("program leader is scoped to own courses", func(t *testing.T) {
		lectures, courses, err := svc.Load(context.Background(), sessionFor(models.RoleProgramLeader, 9))
		require.NoError(t, err)
		assert.Equal(t, []int{4, 5}, gw.requestedID)
		assert.Len(t, courses, 2)
		assert.Equal(t, gw.byCourses, lectures)
	})

	t.Run("admin and student see everything", func(t *testing.T) {
		for _, role := range []models.Role{models.RoleAdmin, models.RolePrincipalLecturer, models.RoleStudent} {
			lectures, _, err := svc.Load(context.Background(), sessionFor(role, 1))
			require.NoError(t, err)
			assert.Equal(t, all, lectures, "role %s", role)
		}
	})

	t.Run("unknown role loads nothing", func(t *testing.T) {
		lectures, courses, err := svc.Load(context.Background(), sessionFor(models.Role("registrar"), 1))
		require.NoError(t, err)
		assert.NotNil(t, lectures)
		assert.NotNil(t, courses)
		assert.Empty(t, lectures)
		assert.Empty(t, courses)
	})
}

func TestMonitoringLoadSurfacesGatewayFailure(t *testing.T) {
	gw := &fakeMonitoringGateway{fetchErr: appErrors.ErrGatewayUnavailable}
	svc := newMonitoringService(gw)

	lectures, courses, err := svc.Load(context.Background(), sessionFor(models.RoleAdmin, 1))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrLoadFailed.Code, appErrors.FromError(err).Code)
	assert.NotNil(t, lectures)
	assert.NotNil(t, courses)
	assert.Empty(t, lectures)
}

func TestMonitoringViewRendersThroughGatewayFailure(t *testing.T) {
	gw := &fakeMonitoringGateway{fetchErr: appErrors.ErrGatewayUnavailable}
	svc := newMonitoringService(gw)

	resp, err := svc.View(context.Background(), sessionFor(models.RoleAdmin, 1), dto.MonitoringQuery{})
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.NotNil(t, resp.LoadError)
	assert.Equal(t, appErrors.ErrLoadFailed.Code, resp.LoadError.Code)
	assert.Equal(t, "failed to load lectures data", resp.LoadError.Message)

	assert.NotNil(t, resp.Lectures)
	assert.Empty(t, resp.Lectures)
	assert.NotNil(t, resp.Courses)
	assert.Zero(t, resp.Analytics.TotalLectures)
}

func TestMonitoringViewHasNoLoadErrorOnSuccess(t *testing.T) {
	gw := &fakeMonitoringGateway{all: []models.LectureRecord{lecture(1, "A", 10, 20)}}
	svc := newMonitoringService(gw)

	resp, err := svc.View(context.Background(), sessionFor(models.RoleAdmin, 1), dto.MonitoringQuery{})
	require.NoError(t, err)
	assert.Nil(t, resp.LoadError)
	assert.Len(t, resp.Lectures, 1)
}

func TestMonitoringAggregate(t *testing.T) {
	svc := newMonitoringService(&fakeMonitoringGateway{})

	lectures := []models.LectureRecord{
		lecture(1, "Web Dev", 40, 50),  // 80%
		lecture(2, "Web Dev", 30, 50),  // 60%
		lecture(3, "Networks", 45, 50), // 90%
		lecture(4, "Databases", 0, 0),  // zero enrolment still counts in the divisor
	}

	a := svc.Aggregate(lectures)

	assert.Equal(t, 4, a.TotalLectures)
	assert.Equal(t, 115, a.TotalStudents)
	// (0.8 + 0.6 + 0.9 + 0) / 4 * 100
	assert.InDelta(t, 57.5, a.AverageAttendance, 1e-9)

	require.Len(t, a.TopCourses, 3)
	assert.Equal(t, "Networks", a.TopCourses[0].Name)
	assert.InDelta(t, 90.0, a.TopCourses[0].Attendance, 1e-9)
	assert.Equal(t, "Web Dev", a.TopCourses[1].Name)
	assert.InDelta(t, 70.0, a.TopCourses[1].Attendance, 1e-9)
	assert.Equal(t, 2, a.TopCourses[1].Lectures)
	assert.Equal(t, "Databases", a.TopCourses[2].Name)
	assert.InDelta(t, 0.0, a.TopCourses[2].Attendance, 1e-9)
}

func TestMonitoringAggregateEmpty(t *testing.T) {
	svc := newMonitoringService(&fakeMonitoringGateway{})
	a := svc.Aggregate(nil)
	assert.Zero(t, a.TotalLectures)
	assert.Zero(t, a.AverageAttendance)
	assert.Empty(t, a.TopCourses)
}

func TestMonitoringAggregateTiedCoursesKeepFirstSeenOrder(t *testing.T) {
	svc := newMonitoringService(&fakeMonitoringGateway{})
	lectures := []models.LectureRecord{
		lecture(1, "Alpha", 10, 20),
		lecture(2, "Beta", 10, 20),
	}

	a := svc.Aggregate(lectures)

	require.Len(t, a.TopCourses, 2)
	assert.Equal(t, "Alpha", a.TopCourses[0].Name)
	assert.Equal(t, "Beta", a.TopCourses[1].Name)
}

func TestMonitoringFilterComposesConjunctively(t *testing.T) {
	svc := newMonitoringService(&fakeMonitoringGateway{})
	lectures := []models.LectureRecord{
		{ID: 1, CourseName: "Web Development", CourseID: 10, ClassName: "BIT-2A", LecturerName: "T. Molapo", FacultyName: "FICT", DateOfLecture: "2025-03-01", ActualStudentsPresent: 45, TotalRegisteredStudent: 50},
		{ID: 2, CourseName: "Web Development", CourseID: 10, ClassName: "BIT-2B", LecturerName: "T. Molapo", FacultyName: "FICT", DateOfLecture: "2025-03-02", ActualStudentsPresent: 20, TotalRegisteredStudent: 50},
		{ID: 3, CourseName: "Accounting", CourseID: 11, ClassName: "BBA-1A", LecturerName: "K. Seeiso", FacultyName: "FBMG", DateOfLecture: "2025-03-01", ActualStudentsPresent: 35, TotalRegisteredStudent: 50},
	}

	t.Run("search matches any of four fields case-insensitively", func(t *testing.T) {
		got := svc.Filter(lectures, dto.LectureFilter{Search: "molapo"})
		assert.Len(t, got, 2)

		got = svc.Filter(lectures, dto.LectureFilter{Search: "bba"})
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].ID)
	})

	t.Run("date matches exactly", func(t *testing.T) {
		got := svc.Filter(lectures, dto.LectureFilter{Date: "2025-03-01"})
		assert.Len(t, got, 2)
		got = svc.Filter(lectures, dto.LectureFilter{Date: "2025-03"})
		assert.Empty(t, got)
	})

	t.Run("course matches by id or name substring", func(t *testing.T) {
		got := svc.Filter(lectures, dto.LectureFilter{Course: "11"})
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].ID)

		got = svc.Filter(lectures, dto.LectureFilter{Course: "account"})
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].ID)
	})

	t.Run("status buckets on the attendance rate", func(t *testing.T) {
		high := svc.Filter(lectures, dto.LectureFilter{Status: "high"})
		require.Len(t, high, 1)
		assert.Equal(t, 1, high[0].ID)

		medium := svc.Filter(lectures, dto.LectureFilter{Status: "medium"})
		require.Len(t, medium, 1)
		assert.Equal(t, 3, medium[0].ID)

		low := svc.Filter(lectures, dto.LectureFilter{Status: "low"})
		require.Len(t, low, 1)
		assert.Equal(t, 2, low[0].ID)

		assert.Len(t, svc.Filter(lectures, dto.LectureFilter{Status: "all"}), 3)
	})

	t.Run("zero-registered lectures bucket as low", func(t *testing.T) {
		withZero := append([]models.LectureRecord{}, lectures...)
		withZero = append(withZero, models.LectureRecord{ID: 4, CourseName: "Seminar", ActualStudentsPresent: 12, TotalRegisteredStudent: 0})

		low := svc.Filter(withZero, dto.LectureFilter{Status: "low"})
		require.Len(t, low, 2)
		assert.Equal(t, 4, low[1].ID)

		high := svc.Filter(withZero, dto.LectureFilter{Status: "high"})
		require.Len(t, high, 1)
	})

	t.Run("filters stack", func(t *testing.T) {
		got := svc.Filter(lectures, dto.LectureFilter{
			Search: "web",
			Date:   "2025-03-01",
			Status: "high",
		})
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].ID)
	})

	t.Run("original slice is untouched", func(t *testing.T) {
		_ = svc.Filter(lectures, dto.LectureFilter{Search: "web"})
		assert.Len(t, lectures, 3)
	})
}

func TestMonitoringSortToggle(t *testing.T) {
	spec := ToggleSort(dto.SortSpec{}, "course_name")
	assert.Equal(t, dto.SortSpec{Key: "course_name", Ascending: true}, spec)

	spec = ToggleSort(spec, "course_name")
	assert.Equal(t, dto.SortSpec{Key: "course_name", Ascending: false}, spec)

	// A different column always starts ascending.
	spec = ToggleSort(spec, "date_of_lecture")
	assert.Equal(t, dto.SortSpec{Key: "date_of_lecture", Ascending: true}, spec)

	// Clicking a descending column restarts ascending.
	spec = ToggleSort(dto.SortSpec{Key: "id", Ascending: false}, "id")
	assert.True(t, spec.Ascending)
}

func TestMonitoringSort(t *testing.T) {
	svc := newMonitoringService(&fakeMonitoringGateway{})
	lectures := []models.LectureRecord{
		{ID: 2, CourseName: "B", ActualStudentsPresent: 30, TotalRegisteredStudent: 50},
		{ID: 1, CourseName: "A", ActualStudentsPresent: 45, TotalRegisteredStudent: 50},
		{ID: 3, CourseName: "C", ActualStudentsPresent: 10, TotalRegisteredStudent: 50},
	}

	asc := svc.Sort(lectures, dto.SortSpec{Key: "course_name", Ascending: true})
	assert.Equal(t, []int{1, 2, 3}, ids(asc))

	desc := svc.Sort(lectures, dto.SortSpec{Key: "attendance", Ascending: false})
	assert.Equal(t, []int{1, 2, 3}, ids(desc))

	// Unknown key leaves the order alone.
	same := svc.Sort(lectures, dto.SortSpec{Key: "venue_rating", Ascending: true})
	assert.Equal(t, []int{2, 1, 3}, ids(same))

	// Input order is preserved after sorting a copy.
	assert.Equal(t, []int{2, 1, 3}, ids(lectures))
}

func ids(lectures []models.LectureRecord) []int {
	out := make([]int, 0, len(lectures))
	for _, l := range lectures {
		out = append(out, l.ID)
	}
	return out
}

func TestMonitoringUpdateOwnership(t *testing.T) {
	gw := &fakeMonitoringGateway{
		byLecturer: map[int][]models.LectureRecord{7: {lecture(3, "C", 8, 10)}},
	}
	svc := newMonitoringService(gw)
	topic := "Routing protocols"
	patch := models.LecturePatch{TopicTaught: &topic}

	t.Run("lecturer updates own record", func(t *testing.T) {
		err := svc.Update(context.Background(), sessionFor(models.RoleLecturer, 7), 3, patch)
		require.NoError(t, err)
		assert.Equal(t, []int{3}, gw.updated)
	})

	t.Run("lecturer cannot touch another lecturer's record", func(t *testing.T) {
		err := svc.Update(context.Background(), sessionFor(models.RoleLecturer, 7), 99, patch)
		assert.ErrorIs(t, err, appErrors.ErrForbidden)
	})

	t.Run("read-only roles cannot update", func(t *testing.T) {
		for _, role := range []models.Role{models.RoleStudent, models.RolePrincipalLecturer} {
			err := svc.Update(context.Background(), sessionFor(role, 1), 3, patch)
			assert.ErrorIs(t, err, appErrors.ErrForbidden, "role %s", role)
		}
	})

	t.Run("admin updates without ownership check", func(t *testing.T) {
		err := svc.Update(context.Background(), sessionFor(models.RoleAdmin, 1), 99, patch)
		require.NoError(t, err)
	})
}

func TestMonitoringDeleteOwnership(t *testing.T) {
	gw := &fakeMonitoringGateway{
		byLecturer: map[int][]models.LectureRecord{7: {lecture(3, "C", 8, 10)}},
	}
	svc := newMonitoringService(gw)

	err := svc.Delete(context.Background(), sessionFor(models.RoleLecturer, 7), 99)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	err = svc.Delete(context.Background(), sessionFor(models.RoleLecturer, 7), 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, gw.deleted)

	err = svc.Delete(context.Background(), sessionFor(models.RoleStudent, 1), 3)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestMonitoringExportFilename(t *testing.T) {
	svc := newMonitoringService(&fakeMonitoringGateway{})
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "lectures_admin_2025-03-01", svc.ExportFilename(models.RoleAdmin, now))
	assert.Equal(t, "lectures_student_2025-03-01", svc.ExportFilename(models.RoleStudent, now))
}

func TestMonitoringExportDataset(t *testing.T) {
	svc := newMonitoringService(&fakeMonitoringGateway{})
	ds := svc.ExportDataset([]models.LectureRecord{
		{ID: 1, DateOfLecture: "2025-03-01", CourseCode: "DIWA2110", CourseName: "Web Dev", ClassName: "BIT-2A", LecturerName: "T. Molapo", WeekOfReporting: "6", ActualStudentsPresent: 45, TotalRegisteredStudent: 50, TopicTaught: "Sessions"},
	})

	require.Len(t, ds.Rows, 1)
	assert.Len(t, ds.Rows[0], len(ds.Headers))
	assert.Equal(t, "90.0", ds.Rows[0][9])
}
