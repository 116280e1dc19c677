package dto

import "github.com/Zulu-012/luct-reporting-system/internal/models"

// RateRequest is a student's star rating submission.
type RateRequest struct {
	LectureID int `json:"lecture_id" binding:"required"`
	Rating    int `json:"rating" binding:"required,min=1,max=5"`
}

// FeedbackRequest is a student's free-text comment on a lecture.
type FeedbackRequest struct {
	LectureID    int    `json:"lecture_id" binding:"required"`
	FeedbackText string `json:"feedback_text" binding:"required"`
}

// RateResponse confirms a stored rating with its qualitative label.
type RateResponse struct {
	LectureID int    `json:"lecture_id"`
	Rating    int    `json:"rating"`
	Label     string `json:"label"`
	Message   string `json:"message"`
}

// RateableLecturesResponse lists the past lectures a student can rate,
// together with the ratings they have already given in this session
// window.
type RateableLecturesResponse struct {
	Lectures []models.LectureRecord `json:"lectures"`
	Ratings  map[int]int            `json:"ratings"`
}
