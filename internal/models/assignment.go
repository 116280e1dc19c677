package models

// Assignment links a lecturer to a class and course, owned by the gateway.
type Assignment struct {
	ID         int `json:"id"`
	LecturerID int `json:"lecturer_id"`
	ClassID    int `json:"class_id"`
	CourseID   int `json:"course_id"`
}
