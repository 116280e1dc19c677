package dto

import "github.com/Zulu-012/luct-reporting-system/internal/models"

// Form wizard steps.
const (
	FormStepBasicInfo      = 1
	FormStepLectureDetails = 2
	FormStepContent        = 3
)

// FormFields holds everything the wizard collects across its three steps.
// All fields are optional at the transport level; the step gates decide
// what must be present when.
type FormFields struct {
	ClassID               int    `json:"class_id"`
	CourseID              int    `json:"course_id"`
	WeekOfReporting       string `json:"week_of_reporting" validate:"omitempty,week"`
	DateOfLecture         string `json:"date_of_lecture" validate:"omitempty,datetime=2006-01-02"`
	ActualStudentsPresent int    `json:"actual_students_present" validate:"min=0"`
	TopicTaught           string `json:"topic_taught"`
	LearningOutcomes      string `json:"learning_outcomes"`
	Recommendations       string `json:"recommendations"`
}

// FormSession is one in-flight report submission. It lives in Redis under
// its ID until submitted or expired.
type FormSession struct {
	ID     string     `json:"id"`
	UserID int        `json:"user_id"`
	Step   int        `json:"step"`
	Fields FormFields `json:"fields"`
}

// FormChoices carries the reference data the wizard's selects are
// populated from.
type FormChoices struct {
	Classes []models.Class  `json:"classes"`
	Courses []models.Course `json:"courses"`
	Weeks   []string        `json:"weeks"`
}

// StartFormResponse opens the wizard: a fresh session plus its choices.
type StartFormResponse struct {
	Session FormSession `json:"session"`
	Choices FormChoices `json:"choices"`
}

// FormStepRequest merges new field values into the session before a step
// transition or submission.
type FormStepRequest struct {
	Fields FormFields `json:"fields"`
}

// SubmitFormResponse returns the created record after a successful
// submission.
type SubmitFormResponse struct {
	Lecture *models.LectureRecord `json:"lecture"`
	Message string                `json:"message"`
}
