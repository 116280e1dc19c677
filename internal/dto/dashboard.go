package dto

import (
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	"github.com/Zulu-012/luct-reporting-system/internal/navigation"
)

// RecentLecture is one entry of the student portal's recent list.
type RecentLecture struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Lecturer   string `json:"lecturer"`
	Attendance string `json:"attendance"`
}

// StudentDashboard summarises the student's past lectures and rating
// activity.
type StudentDashboard struct {
	TotalLectures    int             `json:"totalLectures"`
	AttendedLectures int             `json:"attendedLectures"`
	AverageRating    float64         `json:"averageRating"`
	PendingRatings   int             `json:"pendingRatings"`
	RecentLectures   []RecentLecture `json:"recentLectures"`
}

// LecturerDashboard summarises a lecturer's teaching load.
type LecturerDashboard struct {
	TotalClasses     int     `json:"totalClasses"`
	UpcomingLectures int     `json:"upcomingLectures"`
	StudentsTaught   int     `json:"studentsTaught"`
	AverageRating    float64 `json:"averageRating"`
}

// PrincipalDashboard carries the institution-wide aggregate.
type PrincipalDashboard struct {
	InstitutionStats models.InstitutionStats `json:"institutionStats"`
}

// ProgramLeaderDashboard counts the leader's program population.
type ProgramLeaderDashboard struct {
	Students int `json:"students"`
	Faculty  int `json:"faculty"`
	Courses  int `json:"courses"`
}

// AdminDashboard counts system-wide totals.
type AdminDashboard struct {
	TotalUsers    int `json:"totalUsers"`
	TotalCourses  int `json:"totalCourses"`
	TotalClasses  int `json:"totalClasses"`
	TotalLectures int `json:"totalLectures"`
}

// DashboardResponse is the role-shaped dashboard payload. Exactly one of
// the role sections is set, matching the session's role.
type DashboardResponse struct {
	Role          models.Role             `json:"role"`
	RoleDisplay   string                  `json:"roleDisplay"`
	Menu          []navigation.MenuItem   `json:"menu"`
	DefaultView   navigation.View         `json:"defaultView"`
	Student       *StudentDashboard       `json:"student,omitempty"`
	Lecturer      *LecturerDashboard      `json:"lecturer,omitempty"`
	Principal     *PrincipalDashboard     `json:"principal,omitempty"`
	ProgramLeader *ProgramLeaderDashboard `json:"programLeader,omitempty"`
	Admin         *AdminDashboard         `json:"admin,omitempty"`
}
