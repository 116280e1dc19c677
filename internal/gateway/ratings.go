package gateway

import (
	"context"
	"fmt"

	"github.com/Zulu-012/luct-reporting-system/internal/models"
)

// PostRating stores a student's lecture rating. The gateway owns
// deduplication; a resubmission overwrites server-side state.
func (c *Client) PostRating(ctx context.Context, rating models.Rating) error {
	return c.post(ctx, "/ratings", rating, nil)
}

// PostFeedback stores a student's free-text feedback on a lecture.
func (c *Client) PostFeedback(ctx context.Context, feedback models.Feedback) error {
	return c.post(ctx, "/feedback", feedback, nil)
}

// GetRating returns the average rating for a lecture.
func (c *Client) GetRating(ctx context.Context, lectureID int) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	if err := c.get(ctx, fmt.Sprintf("/ratings/lecture/%d", lectureID), nil, &summary); err != nil {
		return nil, err
	}
	summary.LectureID = lectureID
	return &summary, nil
}

// RatingsByLecturer returns every rating given on a lecturer's lectures.
func (c *Client) RatingsByLecturer(ctx context.Context, lecturerID int) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := c.get(ctx, fmt.Sprintf("/ratings/lecturer/%d", lecturerID), nil, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}
