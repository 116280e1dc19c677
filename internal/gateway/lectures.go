package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Zulu-012/luct-reporting-system/internal/models"
)

// LectureSubmission is the payload posted when a lecturer submits a report.
type LectureSubmission struct {
	ClassID               int    `json:"class_id"`
	CourseID              int    `json:"course_id"`
	WeekOfReporting       string `json:"week_of_reporting"`
	DateOfLecture         string `json:"date_of_lecture"`
	ActualStudentsPresent int    `json:"actual_students_present"`
	TopicTaught           string `json:"topic_taught"`
	LearningOutcomes      string `json:"learning_outcomes"`
	Recommendations       string `json:"recommendations"`
}

// FetchLectures returns every lecture record, in gateway response order.
func (c *Client) FetchLectures(ctx context.Context) ([]models.LectureRecord, error) {
	var lectures []models.LectureRecord
	if err := c.get(ctx, "/lectures", nil, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

// LecturesByLecturer returns the lectures owned by one lecturer, filtered
// server-side.
func (c *Client) LecturesByLecturer(ctx context.Context, lecturerID int) ([]models.LectureRecord, error) {
	var lectures []models.LectureRecord
	if err := c.get(ctx, fmt.Sprintf("/lectures/lecturer/%d", lecturerID), nil, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

// LecturesByCourseIDs returns lectures belonging to any of the given
// courses. An empty id set short-circuits to an empty result.
func (c *Client) LecturesByCourseIDs(ctx context.Context, courseIDs []int) ([]models.LectureRecord, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(courseIDs))
	for i, id := range courseIDs {
		ids[i] = strconv.Itoa(id)
	}
	query := url.Values{"course_ids": []string{strings.Join(ids, ",")}}

	var lectures []models.LectureRecord
	if err := c.get(ctx, "/lectures/courses", query, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

// LecturesByClass returns lectures delivered to one class.
func (c *Client) LecturesByClass(ctx context.Context, classID int) ([]models.LectureRecord, error) {
	var lectures []models.LectureRecord
	if err := c.get(ctx, fmt.Sprintf("/classes/%d/lectures", classID), nil, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

// PostLecture persists a new lecture report.
func (c *Client) PostLecture(ctx context.Context, submission LectureSubmission) (*models.LectureRecord, error) {
	var created models.LectureRecord
	if err := c.post(ctx, "/lectures", submission, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateLecture applies a partial update to an existing report.
func (c *Client) UpdateLecture(ctx context.Context, id int, patch models.LecturePatch) error {
	return c.put(ctx, fmt.Sprintf("/lectures/%d", id), patch, nil)
}

// DeleteLecture removes a report.
func (c *Client) DeleteLecture(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/lectures/%d", id))
}
