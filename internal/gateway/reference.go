package gateway

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Zulu-012/luct-reporting-system/internal/models"
)

// Classes returns every class in the system.
func (c *Client) Classes(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	if err := c.get(ctx, "/classes", nil, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// ClassByID returns a single class.
func (c *Client) ClassByID(ctx context.Context, id int) (*models.Class, error) {
	var class models.Class
	if err := c.get(ctx, fmt.Sprintf("/classes/%d", id), nil, &class); err != nil {
		return nil, err
	}
	return &class, nil
}

// Courses returns every course.
func (c *Client) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.get(ctx, "/courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// CoursesByProgramLeader returns the courses a program leader owns.
func (c *Client) CoursesByProgramLeader(ctx context.Context, leaderID int) ([]models.Course, error) {
	var courses []models.Course
	if err := c.get(ctx, fmt.Sprintf("/courses/program-leader/%d", leaderID), nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// AssignmentsByLecturer returns the class and course assignments held by
// a lecturer.
func (c *Client) AssignmentsByLecturer(ctx context.Context, lecturerID int) ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := c.get(ctx, fmt.Sprintf("/assignments/lecturer/%d", lecturerID), nil, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// AllFaculties returns the faculty list.
func (c *Client) AllFaculties(ctx context.Context) ([]models.Faculty, error) {
	var faculties []models.Faculty
	if err := c.get(ctx, "/faculties", nil, &faculties); err != nil {
		return nil, err
	}
	return faculties, nil
}

// UsersByRole returns users holding the given role; role "all" returns
// everyone.
func (c *Client) UsersByRole(ctx context.Context, role string) ([]models.User, error) {
	query := url.Values{"role": []string{role}}
	var users []models.User
	if err := c.get(ctx, "/users", query, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ProgramStudents returns students enrolled in a program leader's program.
func (c *Client) ProgramStudents(ctx context.Context, leaderID int) ([]models.User, error) {
	var students []models.User
	if err := c.get(ctx, fmt.Sprintf("/programs/%d/students", leaderID), nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// FacultyByProgram returns the teaching staff of a program leader's program.
func (c *Client) FacultyByProgram(ctx context.Context, leaderID int) ([]models.User, error) {
	var staff []models.User
	if err := c.get(ctx, fmt.Sprintf("/programs/%d/faculty", leaderID), nil, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// PrincipalReports returns the institution-level aggregate report.
func (c *Client) PrincipalReports(ctx context.Context) (*models.PrincipalReport, error) {
	var report models.PrincipalReport
	if err := c.get(ctx, "/reports/principal", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
