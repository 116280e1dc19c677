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

type fakeClassGateway struct {
	classes     []models.Class
	faculties   []models.Faculty
	byLecturer  []models.LectureRecord
	lecturerErr error
}

func (f *fakeClassGateway) Classes(ctx context.Context) ([]models.Class, error) {
	return f.classes, nil
}

func (f *fakeClassGateway) AllFaculties(ctx context.Context) ([]models.Faculty, error) {
	return f.faculties, nil
}

func (f *fakeClassGateway) LecturesByLecturer(ctx context.Context, lecturerID int) ([]models.LectureRecord, error) {
	return f.byLecturer, f.lecturerErr
}

func testClasses() []models.Class {
	old := fixedNow().Add(-90 * 24 * time.Hour)
	return []models.Class{
		{ID: 1, ClassName: "BIT-2A", FacultyID: 1, TotalRegisteredStudent: 50, ScheduledTime: "09:00", CreatedAt: old},
		{ID: 2, ClassName: "BIT-2B", FacultyID: 1, TotalRegisteredStudent: 8, ScheduledTime: "10:30", CreatedAt: old},
		{ID: 3, ClassName: "BBA-1A", FacultyID: 2, TotalRegisteredStudent: 30, CreatedAt: fixedNow().Add(-24 * time.Hour)},
	}
}

func newClassService(gw ClassGateway) *ClassService {
	return NewClassService(ClassServiceParams{Gateway: gw, Now: fixedNow})
}

func TestClassesViewDerivedFields(t *testing.T) {
	gw := &fakeClassGateway{
		classes:   testClasses(),
		faculties: []models.Faculty{{ID: 1, Name: "FICT"}, {ID: 2, Name: "FBMG"}},
	}
	svc := newClassService(gw)

	resp, err := svc.Load(context.Background(), sessionFor(models.RoleAdmin, 1), dto.ClassFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Classes, 3)

	assert.Equal(t, models.ClassStatusPopular, resp.Classes[0].Status)
	assert.Equal(t, "09:00 - 10:30", resp.Classes[0].ScheduleDisplay)
	assert.Equal(t, "Mon, Wed, Fri", resp.Classes[0].ScheduleDays)
	assert.Equal(t, "FICT", resp.Classes[0].FacultyDisplay)

	assert.Equal(t, models.ClassStatusSmall, resp.Classes[1].Status)
	assert.Equal(t, models.ClassStatusNew, resp.Classes[2].Status)
	assert.Equal(t, "Not scheduled", resp.Classes[2].ScheduleDisplay)
}

func TestClassesStatsFollowTheFilter(t *testing.T) {
	gw := &fakeClassGateway{classes: testClasses()}
	svc := newClassService(gw)

	resp, err := svc.Load(context.Background(), sessionFor(models.RoleAdmin, 1), dto.ClassFilter{Faculty: "1"})
	require.NoError(t, err)
	assert.Len(t, resp.Classes, 2)
	assert.Equal(t, 2, resp.Stats.TotalClasses)
	assert.Equal(t, 58, resp.Stats.TotalStudents)
	assert.Equal(t, 29, resp.Stats.AverageClassSize)

	resp, err = svc.Load(context.Background(), sessionFor(models.RoleAdmin, 1), dto.ClassFilter{Status: "small"})
	require.NoError(t, err)
	require.Len(t, resp.Classes, 1)
	assert.Equal(t, 2, resp.Classes[0].ID)

	resp, err = svc.Load(context.Background(), sessionFor(models.RoleAdmin, 1), dto.ClassFilter{Faculty: "all", Status: "all"})
	require.NoError(t, err)
	assert.Len(t, resp.Classes, 3)
}

func TestClassesLecturerScoping(t *testing.T) {
	gw := &fakeClassGateway{
		classes:    testClasses(),
		byLecturer: []models.LectureRecord{{ID: 1, ClassID: 2}, {ID: 2, ClassID: 2}},
	}
	svc := newClassService(gw)

	resp, err := svc.Load(context.Background(), sessionFor(models.RoleLecturer, 7), dto.ClassFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Classes, 1)
	assert.Equal(t, 2, resp.Classes[0].ID)
}

func TestClassesLecturerWithoutLecturesSeesNone(t *testing.T) {
	svc := newClassService(&fakeClassGateway{classes: testClasses()})

	resp, err := svc.Load(context.Background(), sessionFor(models.RoleLecturer, 7), dto.ClassFilter{})
	require.NoError(t, err)
	assert.Empty(t, resp.Classes)
	assert.Zero(t, resp.Stats.TotalClasses)
}

func TestClassesLecturerScopingFailureShowsNone(t *testing.T) {
	gw := &fakeClassGateway{classes: testClasses(), lecturerErr: appErrors.ErrGatewayUnavailable}
	svc := newClassService(gw)

	resp, err := svc.Load(context.Background(), sessionFor(models.RoleLecturer, 7), dto.ClassFilter{})
	require.NoError(t, err)
	assert.Empty(t, resp.Classes)
}

func TestClassesFacultyFallbackNames(t *testing.T) {
	gw := &fakeClassGateway{classes: []models.Class{
		{ID: 1, FacultyID: 0},
		{ID: 2, FacultyID: 9},
	}}
	svc := newClassService(gw)

	resp, err := svc.Load(context.Background(), sessionFor(models.RoleAdmin, 1), dto.ClassFilter{})
	require.NoError(t, err)
	assert.Equal(t, "No Faculty", resp.Classes[0].FacultyDisplay)
	assert.Equal(t, "Unknown Faculty", resp.Classes[1].FacultyDisplay)
}
