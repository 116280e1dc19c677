package dto

import "github.com/Zulu-012/luct-reporting-system/internal/models"

// ClassView is a class decorated with derived presentation fields.
type ClassView struct {
	models.Class
	FacultyDisplay  string             `json:"faculty_display"`
	Status          models.ClassStatus `json:"status"`
	ScheduleDisplay string             `json:"schedule_display"`
	ScheduleDays    string             `json:"schedule_days"`
}

// ClassFilter narrows the classes view. Faculty is a faculty ID as a
// string; "all" or empty disables that filter, same for Status.
type ClassFilter struct {
	Faculty string `form:"faculty"`
	Status  string `form:"status"`
}

// ClassStats aggregates the filtered classes view.
type ClassStats struct {
	TotalClasses     int `json:"totalClasses"`
	TotalStudents    int `json:"totalStudents"`
	AverageClassSize int `json:"averageClassSize"`
	ActiveClasses    int `json:"activeClasses"`
}

// ClassesResponse is the classes view payload.
type ClassesResponse struct {
	Classes   []ClassView      `json:"classes"`
	Stats     ClassStats       `json:"stats"`
	Faculties []models.Faculty `json:"faculties"`
}
