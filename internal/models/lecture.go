package models

import "time"

// AttendanceBucket classifies a lecture's attendance rate.
type AttendanceBucket string

const (
	AttendanceHigh   AttendanceBucket = "high"   // >= 80%
	AttendanceMedium AttendanceBucket = "medium" // 60% .. 79.99%
	AttendanceLow    AttendanceBucket = "low"    // < 60%
)

// LectureRecord is a lecturer's report of a delivered lecture, owned by the
// data gateway. Dates are gateway-formatted YYYY-MM-DD strings so that exact
// matching and lexicographic ordering need no parsing.
type LectureRecord struct {
	ID                     int       `json:"id"`
	DateOfLecture          string    `json:"date_of_lecture"`
	WeekOfReporting        string    `json:"week_of_reporting,omitempty"`
	CourseID               int       `json:"course_id"`
	CourseName             string    `json:"course_name"`
	CourseCode             string    `json:"course_code"`
	ClassID                int       `json:"class_id"`
	ClassName              string    `json:"class_name"`
	LecturerID             int       `json:"lecturer_id"`
	LecturerName           string    `json:"lecturer_name"`
	ActualStudentsPresent  int       `json:"actual_students_present"`
	TotalRegisteredStudent int       `json:"total_registered_students"`
	TopicTaught            string    `json:"topic_taught"`
	LearningOutcomes       string    `json:"learning_outcomes"`
	Recommendations        string    `json:"recommendations"`
	ScheduledTime          string    `json:"scheduled_time"`
	FacultyName            string    `json:"faculty_name"`
	Venue                  string    `json:"venue,omitempty"`
	Status                 string    `json:"status,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

// AttendanceRate returns the attendance percentage, zero-guarded: a lecture
// with no registered students has rate 0, never NaN.
func (l LectureRecord) AttendanceRate() float64 {
	if l.TotalRegisteredStudent <= 0 {
		return 0
	}
	return float64(l.ActualStudentsPresent) / float64(l.TotalRegisteredStudent) * 100
}

// AttendanceStatus buckets the zero-guarded attendance rate.
func (l LectureRecord) AttendanceStatus() AttendanceBucket {
	return BucketForRate(l.AttendanceRate())
}

// BucketForRate maps a percentage onto an attendance bucket.
func BucketForRate(rate float64) AttendanceBucket {
	switch {
	case rate >= 80:
		return AttendanceHigh
	case rate >= 60:
		return AttendanceMedium
	default:
		return AttendanceLow
	}
}

// LecturePatch carries the fields a lecturer or admin may change on an
// existing report.
type LecturePatch struct {
	ActualStudentsPresent  *int    `json:"actual_students_present,omitempty"`
	TotalRegisteredStudent *int    `json:"total_registered_students,omitempty"`
	TopicTaught            *string `json:"topic_taught,omitempty"`
	LearningOutcomes       *string `json:"learning_outcomes,omitempty"`
	Recommendations        *string `json:"recommendations,omitempty"`
}
