package dto

import (
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	"github.com/Zulu-012/luct-reporting-system/internal/navigation"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
)

// CourseAttendance is one row of the top-courses leaderboard.
type CourseAttendance struct {
	Name       string  `json:"name"`
	Attendance float64 `json:"attendance"`
	Lectures   int     `json:"lectures"`
}

// MonitoringAnalytics aggregates a role-scoped lecture set.
type MonitoringAnalytics struct {
	TotalLectures     int                `json:"totalLectures"`
	AverageAttendance float64            `json:"averageAttendance"`
	TotalStudents     int                `json:"totalStudents"`
	TopCourses        []CourseAttendance `json:"topCourses"`
}

// LectureFilter is the conjunctive filter set applied to the monitoring
// list. Zero values mean "not filtering on this field"; Status "all" is
// equivalent to empty.
type LectureFilter struct {
	Search  string `form:"search"`
	Class   string `form:"class"`
	Date    string `form:"date"`
	Faculty string `form:"faculty"`
	Course  string `form:"course"`
	Status  string `form:"status"`
}

// SortSpec names the column the list is ordered by. An empty key leaves
// the list in load order.
type SortSpec struct {
	Key       string `form:"sort" json:"key"`
	Ascending bool   `json:"ascending"`
}

// MonitoringQuery binds the full monitoring list request.
type MonitoringQuery struct {
	LectureFilter
	SortKey string `form:"sort"`
	SortDir string `form:"dir"`
}

// Sort translates the bound query into a sort spec. Direction defaults
// to ascending; anything but "desc" ascends.
func (q MonitoringQuery) Sort() SortSpec {
	return SortSpec{Key: q.SortKey, Ascending: q.SortDir != "desc"}
}

// MonitoringResponse is the full monitoring view payload: the filtered,
// sorted list plus its aggregates and what the caller may do with it.
// LoadError is set when the gateway could not be reached; the table is
// then empty but the view still renders.
type MonitoringResponse struct {
	Lectures    []models.LectureRecord `json:"lectures"`
	Analytics   MonitoringAnalytics    `json:"analytics"`
	Permissions navigation.Permissions `json:"permissions"`
	Faculties   []string               `json:"faculties"`
	Classes     []string               `json:"classes"`
	Courses     []models.Course        `json:"courses"`
	LoadError   *appErrors.Error       `json:"loadError,omitempty"`
}
