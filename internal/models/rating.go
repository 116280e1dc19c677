package models

// Rating is a student's 1..5 star rating of a lecture. Resubmission
// overwrites only this service's per-user cache; the gateway owns the
// stored rating.
type Rating struct {
	LectureID int `json:"lecture_id"`
	Rating    int `json:"rating"`
}

// RatingSummary is the gateway's aggregate for one lecture.
type RatingSummary struct {
	LectureID     int     `json:"lecture_id"`
	AverageRating float64 `json:"average_rating"`
}

// Feedback is a student's free-text comment on a lecture.
type Feedback struct {
	LectureID    int    `json:"lecture_id"`
	FeedbackText string `json:"feedback_text"`
}

// RatingLabel renders a star value on the qualitative scale shown next to
// submitted ratings.
func RatingLabel(rating float64) string {
	switch {
	case rating >= 4.5:
		return "Excellent"
	case rating >= 4.0:
		return "Very Good"
	case rating >= 3.0:
		return "Good"
	case rating >= 2.0:
		return "Fair"
	default:
		return "Poor"
	}
}
