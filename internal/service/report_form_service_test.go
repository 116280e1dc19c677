package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zulu-012/luct-reporting-system/internal/dto"
	"github.com/Zulu-012/luct-reporting-system/internal/gateway"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
)

type fakeFormGateway struct {
	classes   []models.Class
	courses   []models.Course
	posted    []gateway.LectureSubmission
	postErr   error
	classErr  error
	courseErr error
}

func (f *fakeFormGateway) Classes(ctx context.Context) ([]models.Class, error) {
	return f.classes, f.classErr
}

func (f *fakeFormGateway) Courses(ctx context.Context) ([]models.Course, error) {
	return f.courses, f.courseErr
}

func (f *fakeFormGateway) PostLecture(ctx context.Context, sub gateway.LectureSubmission) (*models.LectureRecord, error) {
	if f.postErr != nil {
		return nil, f.postErr
	}
	f.posted = append(f.posted, sub)
	return &models.LectureRecord{ID: 42, ClassID: sub.ClassID, CourseID: sub.CourseID, DateOfLecture: sub.DateOfLecture}, nil
}

func newFormService(gw FormGateway) *ReportFormService {
	return NewReportFormService(ReportFormServiceParams{Gateway: gw})
}

func lecturerSession() models.Session {
	return models.Session{User: models.User{ID: 7, Role: models.RoleLecturer}}
}

func TestFormStartRoleGate(t *testing.T) {
	svc := newFormService(&fakeFormGateway{})

	for _, role := range []models.Role{models.RoleProgramLeader, models.RoleAdmin} {
		_, err := svc.Start(context.Background(), models.Session{User: models.User{ID: 1, Role: role}})
		require.Error(t, err, "role %s", role)
		assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code, "role %s", role)
	}

	// Students get the rating-flow steer, not the generic denial.
	_, err := svc.Start(context.Background(), models.Session{User: models.User{ID: 1, Role: models.RoleStudent}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStudentRatingFlow.Code, appErrors.FromError(err).Code)
	assert.NotEqual(t, appErrors.ErrForbidden.Code, appErrors.ErrStudentRatingFlow.Code)

	for _, role := range []models.Role{models.RoleLecturer, models.RolePrincipalLecturer} {
		resp, err := svc.Start(context.Background(), models.Session{User: models.User{ID: 1, Role: role}})
		require.NoError(t, err, "role %s", role)
		assert.Equal(t, dto.FormStepBasicInfo, resp.Session.Step)
		assert.NotEmpty(t, resp.Session.ID)
	}
}

func TestFormStartChoices(t *testing.T) {
	gw := &fakeFormGateway{
		classes: []models.Class{{ID: 1, ClassName: "BIT-2A"}},
		courses: []models.Course{{ID: 10, CourseName: "Web Dev"}},
	}
	svc := newFormService(gw)

	resp, err := svc.Start(context.Background(), lecturerSession())
	require.NoError(t, err)

	assert.Equal(t, gw.classes, resp.Choices.Classes)
	assert.Equal(t, gw.courses, resp.Choices.Courses)
	require.Len(t, resp.Choices.Weeks, 15)
	assert.Equal(t, "Week 1", resp.Choices.Weeks[0])
	assert.Equal(t, "Week 15", resp.Choices.Weeks[14])
}

func TestFormAdvanceGates(t *testing.T) {
	svc := newFormService(&fakeFormGateway{})
	sess := lecturerSession()

	resp, err := svc.Start(context.Background(), sess)
	require.NoError(t, err)
	id := resp.Session.ID

	t.Run("step one requires class and course", func(t *testing.T) {
		_, err := svc.Advance(context.Background(), sess, id, dto.FormFields{ClassID: 1})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

		got, err := svc.Get(context.Background(), sess, id)
		require.NoError(t, err)
		assert.Equal(t, dto.FormStepBasicInfo, got.Step)
	})

	t.Run("step one passes with both selections", func(t *testing.T) {
		got, err := svc.Advance(context.Background(), sess, id, dto.FormFields{ClassID: 1, CourseID: 10})
		require.NoError(t, err)
		assert.Equal(t, dto.FormStepLectureDetails, got.Step)
	})

	t.Run("step two requires date and week", func(t *testing.T) {
		_, err := svc.Advance(context.Background(), sess, id, dto.FormFields{DateOfLecture: "2025-03-01"})
		require.Error(t, err)

		got, err := svc.Advance(context.Background(), sess, id, dto.FormFields{WeekOfReporting: "Week 6"})
		require.NoError(t, err)
		assert.Equal(t, dto.FormStepContent, got.Step)
	})

	t.Run("advancing from the last step is a no-op", func(t *testing.T) {
		got, err := svc.Advance(context.Background(), sess, id, dto.FormFields{})
		require.NoError(t, err)
		assert.Equal(t, dto.FormStepContent, got.Step)
	})
}

func TestFormAdvanceRejectsBadFormats(t *testing.T) {
	svc := newFormService(&fakeFormGateway{})
	sess := lecturerSession()
	resp, err := svc.Start(context.Background(), sess)
	require.NoError(t, err)

	_, err = svc.Advance(context.Background(), sess, resp.Session.ID, dto.FormFields{
		ClassID: 1, CourseID: 10, DateOfLecture: "03/01/2025",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Advance(context.Background(), sess, resp.Session.ID, dto.FormFields{
		ClassID: 1, CourseID: 10, WeekOfReporting: "Week 16",
	})
	require.Error(t, err)
}

func TestFormBackNeverDropsBelowStepOne(t *testing.T) {
	svc := newFormService(&fakeFormGateway{})
	sess := lecturerSession()
	resp, err := svc.Start(context.Background(), sess)
	require.NoError(t, err)
	id := resp.Session.ID

	_, err = svc.Advance(context.Background(), sess, id, dto.FormFields{ClassID: 1, CourseID: 10})
	require.NoError(t, err)

	got, err := svc.Back(context.Background(), sess, id, dto.FormFields{})
	require.NoError(t, err)
	assert.Equal(t, dto.FormStepBasicInfo, got.Step)

	got, err = svc.Back(context.Background(), sess, id, dto.FormFields{})
	require.NoError(t, err)
	assert.Equal(t, dto.FormStepBasicInfo, got.Step)

	// Values entered before going back survive.
	assert.Equal(t, 1, got.Fields.ClassID)
	assert.Equal(t, 10, got.Fields.CourseID)
}

func TestFormSubmit(t *testing.T) {
	gw := &fakeFormGateway{}
	svc := newFormService(gw)
	sess := lecturerSession()

	resp, err := svc.Start(context.Background(), sess)
	require.NoError(t, err)
	id := resp.Session.ID

	_, err = svc.Advance(context.Background(), sess, id, dto.FormFields{ClassID: 1, CourseID: 10})
	require.NoError(t, err)
	_, err = svc.Advance(context.Background(), sess, id, dto.FormFields{DateOfLecture: "2025-03-01", WeekOfReporting: "Week 6"})
	require.NoError(t, err)

	out, err := svc.Submit(context.Background(), sess, id, dto.FormFields{
		ActualStudentsPresent: 45,
		TopicTaught:           "Sessions and cookies",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, out.Lecture.ID)
	require.Len(t, gw.posted, 1)
	assert.Equal(t, "Week 6", gw.posted[0].WeekOfReporting)
	assert.Equal(t, 45, gw.posted[0].ActualStudentsPresent)

	// The session is gone after a successful submission.
	_, err = svc.Get(context.Background(), sess, id)
	assert.ErrorIs(t, err, appErrors.ErrFormSessionExpired)
}

func TestFormSubmitDoesNotRequireWeek(t *testing.T) {
	gw := &fakeFormGateway{}
	svc := newFormService(gw)
	sess := lecturerSession()

	resp, err := svc.Start(context.Background(), sess)
	require.NoError(t, err)

	// Submitting straight from step one with no week set: class, course
	// and date are the only hard requirements at submission time.
	out, err := svc.Submit(context.Background(), sess, resp.Session.ID, dto.FormFields{
		ClassID: 1, CourseID: 10, DateOfLecture: "2025-03-01",
	})
	require.NoError(t, err)
	assert.NotNil(t, out.Lecture)
	assert.Empty(t, gw.posted[0].WeekOfReporting)
}

func TestFormSubmitRequiresCoreFields(t *testing.T) {
	svc := newFormService(&fakeFormGateway{})
	sess := lecturerSession()

	resp, err := svc.Start(context.Background(), sess)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), sess, resp.Session.ID, dto.FormFields{ClassID: 1, CourseID: 10})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFormSessionIsOwnerScoped(t *testing.T) {
	svc := newFormService(&fakeFormGateway{})
	owner := lecturerSession()

	resp, err := svc.Start(context.Background(), owner)
	require.NoError(t, err)

	other := models.Session{User: models.User{ID: 99, Role: models.RoleLecturer}}
	_, err = svc.Get(context.Background(), other, resp.Session.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestFormUnknownSessionExpired(t *testing.T) {
	svc := newFormService(&fakeFormGateway{})
	_, err := svc.Get(context.Background(), lecturerSession(), "no-such-session")
	assert.ErrorIs(t, err, appErrors.ErrFormSessionExpired)
}
