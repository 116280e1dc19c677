package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zulu-012/luct-reporting-system/internal/dto"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
)

type fakeRatingGateway struct {
	lectures []models.LectureRecord
	ratings  []models.Rating
	feedback []models.Feedback
	postErr  error
}

func (f *fakeRatingGateway) FetchLectures(ctx context.Context) ([]models.LectureRecord, error) {
	return f.lectures, nil
}

func (f *fakeRatingGateway) PostRating(ctx context.Context, r models.Rating) error {
	if f.postErr != nil {
		return f.postErr
	}
	f.ratings = append(f.ratings, r)
	return nil
}

func (f *fakeRatingGateway) PostFeedback(ctx context.Context, fb models.Feedback) error {
	f.feedback = append(f.feedback, fb)
	return nil
}

func newRatingService(gw RatingGateway) *RatingService {
	return NewRatingService(RatingServiceParams{Gateway: gw, Now: fixedNow})
}

func studentSession() models.Session {
	return models.Session{User: models.User{ID: 5, Role: models.RoleStudent}}
}

func TestRateableLecturesOnlyPastOnes(t *testing.T) {
	gw := &fakeRatingGateway{lectures: []models.LectureRecord{
		{ID: 1, DateOfLecture: "2025-03-01"},
		{ID: 2, DateOfLecture: "2025-03-10"}, // today counts as past
		{ID: 3, DateOfLecture: "2025-03-11"},
		{ID: 4},
	}}
	svc := newRatingService(gw)

	resp, err := svc.RateableLectures(context.Background(), studentSession())
	require.NoError(t, err)
	require.Len(t, resp.Lectures, 2)
	assert.Equal(t, 1, resp.Lectures[0].ID)
	assert.Equal(t, 2, resp.Lectures[1].ID)
}

func TestRateableLecturesStudentOnly(t *testing.T) {
	svc := newRatingService(&fakeRatingGateway{})
	for _, role := range []models.Role{models.RoleLecturer, models.RoleAdmin} {
		_, err := svc.RateableLectures(context.Background(), sessionFor(role, 1))
		assert.ErrorIs(t, err, appErrors.ErrForbidden, "role %s", role)
	}
}

func TestRateStoresAndRemembers(t *testing.T) {
	gw := &fakeRatingGateway{}
	svc := newRatingService(gw)
	sess := studentSession()

	resp, err := svc.Rate(context.Background(), sess, dto.RateRequest{LectureID: 10, Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, "Excellent", resp.Label)
	require.Len(t, gw.ratings, 1)
	assert.Equal(t, models.Rating{LectureID: 10, Rating: 5}, gw.ratings[0])

	list, err := svc.RateableLectures(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 5, list.Ratings[10])
}

func TestRateResubmissionKeepsLatestValue(t *testing.T) {
	gw := &fakeRatingGateway{}
	svc := newRatingService(gw)
	sess := studentSession()

	_, err := svc.Rate(context.Background(), sess, dto.RateRequest{LectureID: 10, Rating: 2})
	require.NoError(t, err)
	_, err = svc.Rate(context.Background(), sess, dto.RateRequest{LectureID: 10, Rating: 4})
	require.NoError(t, err)

	// Both submissions reach the gateway; only the latest is remembered.
	assert.Len(t, gw.ratings, 2)
	list, err := svc.RateableLectures(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 4, list.Ratings[10])
}

func TestRateValidatesRange(t *testing.T) {
	svc := newRatingService(&fakeRatingGateway{})
	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Rate(context.Background(), studentSession(), dto.RateRequest{LectureID: 1, Rating: rating})
		require.Error(t, err, "rating %d", rating)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestRateFailureIsNotRemembered(t *testing.T) {
	gw := &fakeRatingGateway{postErr: appErrors.ErrGatewayUnavailable}
	svc := newRatingService(gw)
	sess := studentSession()

	_, err := svc.Rate(context.Background(), sess, dto.RateRequest{LectureID: 10, Rating: 3})
	require.Error(t, err)

	list, err := svc.RateableLectures(context.Background(), sess)
	require.NoError(t, err)
	assert.NotContains(t, list.Ratings, 10)
}

func TestSubmitFeedback(t *testing.T) {
	gw := &fakeRatingGateway{}
	svc := newRatingService(gw)

	err := svc.SubmitFeedback(context.Background(), studentSession(), dto.FeedbackRequest{LectureID: 3, FeedbackText: "Great pacing"})
	require.NoError(t, err)
	require.Len(t, gw.feedback, 1)
	assert.Equal(t, "Great pacing", gw.feedback[0].FeedbackText)

	err = svc.SubmitFeedback(context.Background(), studentSession(), dto.FeedbackRequest{LectureID: 3})
	assert.Error(t, err)

	err = svc.SubmitFeedback(context.Background(), sessionFor(models.RoleAdmin, 1), dto.FeedbackRequest{LectureID: 3, FeedbackText: "x"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}
