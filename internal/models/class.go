package models

import "time"

// Class is a taught cohort, read-only from this service's perspective.
type Class struct {
	ID                     int       `json:"id"`
	ClassName              string    `json:"class_name"`
	Venue                  string    `json:"venue"`
	ScheduledTime          string    `json:"scheduled_time"`
	TotalRegisteredStudent int       `json:"total_registered_students"`
	FacultyID              int       `json:"faculty_id"`
	FacultyName            string    `json:"faculty_name"`
	CreatedAt              time.Time `json:"created_at"`
}

// Course is a curriculum unit, read-only.
type Course struct {
	ID                int    `json:"id"`
	CourseCode        string `json:"course_code"`
	CourseName        string `json:"course_name"`
	ProgramLeaderName string `json:"program_leader_name,omitempty"`
}

// Faculty is an organisational unit owning classes.
type Faculty struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ClassStatus is a presentation-level classification derived from a class's
// age and enrolment.
type ClassStatus string

const (
	ClassStatusNew     ClassStatus = "new"     // created within the last 30 days
	ClassStatusPopular ClassStatus = "popular" // more than 40 students
	ClassStatusSmall   ClassStatus = "small"   // fewer than 10 students
	ClassStatusActive  ClassStatus = "active"
)

// StatusAt derives the class status relative to the given instant. Age wins
// over size.
func (c Class) StatusAt(now time.Time) ClassStatus {
	if !c.CreatedAt.IsZero() && now.Sub(c.CreatedAt) < 30*24*time.Hour {
		return ClassStatusNew
	}
	if c.TotalRegisteredStudent > 40 {
		return ClassStatusPopular
	}
	if c.TotalRegisteredStudent < 10 {
		return ClassStatusSmall
	}
	return ClassStatusActive
}
