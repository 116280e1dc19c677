// Package navigation holds the role policy and view router: which views a
// role may navigate to, what it may do inside them, and how an arbitrary
// selection resolves to a renderable view.
package navigation

import "github.com/Zulu-012/luct-reporting-system/internal/models"

// View is a named, role-scoped screen key. Keys are literal strings; the
// same key can carry different content for different roles.
type View string

const (
	ViewDashboard       View = "Dashboard"
	ViewLectures        View = "Lectures"
	ViewMyClasses       View = "My Classes"
	ViewLectureReport   View = "Lecture Report"
	ViewMonitoring      View = "Monitoring"
	ViewRating          View = "Rating"
	ViewPrincipalReport View = "Principal Report"
	ViewProgramReport   View = "Program Report"
	ViewClasses         View = "Classes"
	ViewCourses         View = "Courses"
	ViewReports         View = "Reports"

	// ViewUnrecognizedRole is the fallback for users whose role falls
	// outside the closed enumeration.
	ViewUnrecognizedRole View = "Unrecognized Role"
)

// MenuItem is one navigable entry in a role's menu.
type MenuItem struct {
	Key   View   `json:"key"`
	Label string `json:"label"`
}

// Filter names one of the monitoring filters a role can see.
type Filter string

const (
	FilterSearch           Filter = "search"
	FilterFaculty          Filter = "faculty"
	FilterCourse           Filter = "course"
	FilterClass            Filter = "class"
	FilterDate             Filter = "date"
	FilterAttendanceStatus Filter = "attendance_status"
)

// Permissions describes what a role may do within a view.
type Permissions struct {
	CanEdit        bool     `json:"can_edit"`
	CanDelete      bool     `json:"can_delete"`
	VisibleFilters []Filter `json:"visible_filters"`
}

// MenuFor returns the role's menu in its fixed declared order. Unknown
// roles get an empty menu.
func MenuFor(role models.Role) []MenuItem {
	switch role {
	case models.RoleStudent:
		return []MenuItem{
			{Key: ViewDashboard, Label: "Dashboard"},
			{Key: ViewMonitoring, Label: "Lecture Monitoring"},
			{Key: ViewRating, Label: "Rate Lectures"},
		}
	case models.RoleLecturer:
		return []MenuItem{
			{Key: ViewDashboard, Label: "Dashboard"},
			{Key: ViewLectures, Label: "Submit Lecture"},
			{Key: ViewMyClasses, Label: "My Classes"},
			{Key: ViewLectureReport, Label: "My Reports"},
			{Key: ViewMonitoring, Label: "Monitoring"},
			{Key: ViewRating, Label: "Student Ratings"},
		}
	case models.RolePrincipalLecturer:
		return []MenuItem{
			{Key: ViewDashboard, Label: "Dashboard"},
			{Key: ViewLectures, Label: "Lectures"},
			{Key: ViewPrincipalReport, Label: "Institution Report"},
			{Key: ViewMonitoring, Label: "Monitoring"},
			{Key: ViewClasses, Label: "Classes"},
			{Key: ViewCourses, Label: "Courses"},
			{Key: ViewRating, Label: "Rating"},
		}
	case models.RoleProgramLeader:
		return []MenuItem{
			{Key: ViewDashboard, Label: "Dashboard"},
			{Key: ViewProgramReport, Label: "Program Report"},
			{Key: ViewCourses, Label: "Courses"},
			{Key: ViewMonitoring, Label: "Monitoring"},
			{Key: ViewClasses, Label: "Classes"},
			{Key: ViewLectures, Label: "Lectures"},
			{Key: ViewRating, Label: "Rating"},
		}
	case models.RoleAdmin:
		return []MenuItem{
			{Key: ViewDashboard, Label: "Dashboard"},
			{Key: ViewLectures, Label: "Lectures"},
			{Key: ViewClasses, Label: "Classes"},
			{Key: ViewCourses, Label: "Courses"},
			{Key: ViewReports, Label: "Reports"},
			{Key: ViewMonitoring, Label: "Monitoring"},
			{Key: ViewRating, Label: "Ratings"},
		}
	}
	return nil
}

// DefaultView is where every recognised role lands; unknown roles fall
// through to the unrecognized-role view.
func DefaultView(role models.Role) View {
	if role.Valid() {
		return ViewDashboard
	}
	return ViewUnrecognizedRole
}

// InMenu reports whether the view belongs to the role's menu key-space.
func InMenu(role models.Role, view View) bool {
	for _, item := range MenuFor(role) {
		if item.Key == view {
			return true
		}
	}
	return false
}

// PermissionsFor returns the role's capabilities within a view. Mutation
// rights and filter visibility only apply on lecture-list views; every
// other view is read-only with no filters.
func PermissionsFor(role models.Role, view View) Permissions {
	switch view {
	case ViewMonitoring, ViewLectures, ViewLectureReport, ViewReports:
	default:
		return Permissions{}
	}

	switch role {
	case models.RoleLecturer:
		return Permissions{
			CanEdit:        true,
			CanDelete:      true,
			VisibleFilters: []Filter{FilterSearch, FilterClass, FilterDate, FilterAttendanceStatus},
		}
	case models.RoleProgramLeader:
		return Permissions{
			CanEdit:        true,
			CanDelete:      true,
			VisibleFilters: []Filter{FilterSearch, FilterCourse, FilterClass, FilterDate, FilterAttendanceStatus},
		}
	case models.RolePrincipalLecturer:
		return Permissions{
			VisibleFilters: []Filter{FilterSearch, FilterFaculty, FilterClass, FilterDate, FilterAttendanceStatus},
		}
	case models.RoleAdmin:
		return Permissions{
			CanEdit:        true,
			CanDelete:      true,
			VisibleFilters: []Filter{FilterSearch, FilterFaculty, FilterClass, FilterDate, FilterAttendanceStatus},
		}
	case models.RoleStudent:
		// Students browse but never mutate, and the attendance filter is
		// hidden from them.
		return Permissions{
			VisibleFilters: []Filter{FilterSearch, FilterClass, FilterDate},
		}
	}
	return Permissions{}
}
