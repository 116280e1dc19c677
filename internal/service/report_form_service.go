package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zulu-012/luct-reporting-system/internal/dto"
	"github.com/Zulu-012/luct-reporting-system/internal/gateway"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
)

// FormGateway is the slice of the data gateway the report form consumes.
type FormGateway interface {
	Classes(ctx context.Context) ([]models.Class, error)
	Courses(ctx context.Context) ([]models.Course, error)
	PostLecture(ctx context.Context, submission gateway.LectureSubmission) (*models.LectureRecord, error)
}

// formStore persists in-flight wizard sessions.
type formStore interface {
	get(ctx context.Context, id string) (*dto.FormSession, error)
	put(ctx context.Context, session dto.FormSession) error
	del(ctx context.Context, id string) error
}

// ReportFormService drives the three-step lecture report wizard. Sessions
// are server-side, keyed by an opaque ID, and expire after the configured
// TTL so abandoned forms clean themselves up.
type ReportFormService struct {
	gateway  FormGateway
	cache    *CacheService
	store    formStore
	validate *validator.Validate
	logger   *zap.Logger
	maxWeeks int
}

// ReportFormServiceParams bundles dependencies for NewReportFormService.
type ReportFormServiceParams struct {
	Gateway    FormGateway
	Cache      *CacheService
	Logger     *zap.Logger
	SessionTTL time.Duration
	MaxWeeks   int
}

// NewReportFormService constructs the wizard service. Without a working
// cache it falls back to in-process sessions, which do not survive a
// restart but keep the form usable.
func NewReportFormService(p ReportFormServiceParams) *ReportFormService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.SessionTTL <= 0 {
		p.SessionTTL = 30 * time.Minute
	}
	if p.MaxWeeks <= 0 {
		p.MaxWeeks = 15
	}

	v := validator.New()
	maxWeeks := p.MaxWeeks
	_ = v.RegisterValidation("week", func(fl validator.FieldLevel) bool {
		return weekNumber(fl.Field().String(), maxWeeks) > 0
	})

	var store formStore
	if p.Cache.Enabled() {
		store = &redisFormStore{cache: p.Cache, ttl: p.SessionTTL}
	} else {
		store = newMemoryFormStore(p.SessionTTL)
	}

	return &ReportFormService{
		gateway:  p.Gateway,
		cache:    p.Cache,
		store:    store,
		validate: v,
		logger:   p.Logger,
		maxWeeks: maxWeeks,
	}
}

// weekNumber parses "Week N" and returns N when it falls inside the
// reporting calendar, zero otherwise.
func weekNumber(s string, maxWeeks int) int {
	rest, ok := strings.CutPrefix(s, "Week ")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > maxWeeks {
		return 0
	}
	return n
}

// CanSubmit reports whether the role may file lecture reports.
func (s *ReportFormService) CanSubmit(role models.Role) bool {
	return role == models.RoleLecturer || role == models.RolePrincipalLecturer
}

// Start opens a new wizard session at step one and returns the reference
// data its selects are populated from. Students are pointed at the rating
// surface instead; every other non-submitting role is denied.
func (s *ReportFormService) Start(ctx context.Context, sess models.Session) (*dto.StartFormResponse, error) {
	if sess.User.Role == models.RoleStudent {
		return nil, appErrors.ErrStudentRatingFlow
	}
	if !s.CanSubmit(sess.User.Role) {
		return nil, appErrors.Wrap(nil, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status,
			"lecture reports require the lecturer or principal lecturer role")
	}

	classes, err := s.gateway.Classes(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrLoadFailed.Code, appErrors.ErrLoadFailed.Status, "failed to load classes")
	}
	courses, err := s.gateway.Courses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrLoadFailed.Code, appErrors.ErrLoadFailed.Status, "failed to load courses")
	}

	session := dto.FormSession{
		ID:     uuid.NewString(),
		UserID: sess.User.ID,
		Step:   dto.FormStepBasicInfo,
	}
	if err := s.store.put(ctx, session); err != nil {
		return nil, err
	}

	weeks := make([]string, 0, s.maxWeeks)
	for i := 1; i <= s.maxWeeks; i++ {
		weeks = append(weeks, fmt.Sprintf("Week %d", i))
	}

	return &dto.StartFormResponse{
		Session: session,
		Choices: dto.FormChoices{Classes: classes, Courses: courses, Weeks: weeks},
	}, nil
}

// Get returns the caller's session, or the expired-session error when it
// is gone or belongs to someone else.
func (s *ReportFormService) Get(ctx context.Context, sess models.Session, id string) (*dto.FormSession, error) {
	session, err := s.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != sess.User.ID {
		return nil, appErrors.ErrForbidden
	}
	return session, nil
}

// merge folds non-zero incoming values into the session fields. Step
// transitions never clear previously entered values.
func merge(into *dto.FormFields, in dto.FormFields) {
	if in.ClassID != 0 {
		into.ClassID = in.ClassID
	}
	if in.CourseID != 0 {
		into.CourseID = in.CourseID
	}
	if in.WeekOfReporting != "" {
		into.WeekOfReporting = in.WeekOfReporting
	}
	if in.DateOfLecture != "" {
		into.DateOfLecture = in.DateOfLecture
	}
	if in.ActualStudentsPresent != 0 {
		into.ActualStudentsPresent = in.ActualStudentsPresent
	}
	if in.TopicTaught != "" {
		into.TopicTaught = in.TopicTaught
	}
	if in.LearningOutcomes != "" {
		into.LearningOutcomes = in.LearningOutcomes
	}
	if in.Recommendations != "" {
		into.Recommendations = in.Recommendations
	}
}

func (s *ReportFormService) checkFormats(fields dto.FormFields) error {
	if err := s.validate.Struct(fields); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid form values")
	}
	return nil
}

// Advance merges the incoming values and moves the session forward one
// step, enforcing the gate of the step being left. Step one needs a class
// and a course, step two a date and a reporting week. Advancing from the
// final step is a no-op.
func (s *ReportFormService) Advance(ctx context.Context, sess models.Session, id string, in dto.FormFields) (*dto.FormSession, error) {
	session, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	merge(&session.Fields, in)
	if err := s.checkFormats(session.Fields); err != nil {
		return nil, err
	}

	switch session.Step {
	case dto.FormStepBasicInfo:
		if session.Fields.ClassID == 0 || session.Fields.CourseID == 0 {
			return nil, appErrors.Wrap(nil, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				"please select both class and course before proceeding")
		}
		session.Step = dto.FormStepLectureDetails
	case dto.FormStepLectureDetails:
		if session.Fields.DateOfLecture == "" || session.Fields.WeekOfReporting == "" {
			return nil, appErrors.Wrap(nil, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				"please fill all required fields before proceeding")
		}
		session.Step = dto.FormStepContent
	}

	if err := s.store.put(ctx, *session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back merges the incoming values and steps backwards, never below step
// one. No gate applies when moving back.
func (s *ReportFormService) Back(ctx context.Context, sess models.Session, id string, in dto.FormFields) (*dto.FormSession, error) {
	session, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	merge(&session.Fields, in)
	if session.Step > dto.FormStepBasicInfo {
		session.Step--
	}
	if err := s.store.put(ctx, *session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit finalises the session. Class, course and date must be present;
// the reporting week, required to pass step two, is deliberately not
// re-checked here. On success the session is discarded and the monitoring
// caches invalidated.
func (s *ReportFormService) Submit(ctx context.Context, sess models.Session, id string, in dto.FormFields) (*dto.SubmitFormResponse, error) {
	session, err := s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	merge(&session.Fields, in)
	if err := s.checkFormats(session.Fields); err != nil {
		return nil, err
	}

	f := session.Fields
	if f.ClassID == 0 || f.CourseID == 0 || f.DateOfLecture == "" {
		return nil, appErrors.Wrap(nil, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"please fill all required fields")
	}

	record, err := s.gateway.PostLecture(ctx, gateway.LectureSubmission{
		ClassID:               f.ClassID,
		CourseID:              f.CourseID,
		WeekOfReporting:       f.WeekOfReporting,
		DateOfLecture:         f.DateOfLecture,
		ActualStudentsPresent: f.ActualStudentsPresent,
		TopicTaught:           f.TopicTaught,
		LearningOutcomes:      f.LearningOutcomes,
		Recommendations:       f.Recommendations,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.del(ctx, id); err != nil {
		s.logger.Warn("form session cleanup failed", zap.String("session_id", id), zap.Error(err))
	}
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, "monitoring:*")
		_ = s.cache.Invalidate(ctx, "dashboard:*")
	}

	return &dto.SubmitFormResponse{
		Lecture: record,
		Message: "Lecture report submitted successfully!",
	}, nil
}

// redisFormStore keeps sessions in Redis so they survive restarts and are
// shared across replicas.
type redisFormStore struct {
	cache *CacheService
	ttl   time.Duration
}

func formKey(id string) string { return "formsession:" + id }

func (r *redisFormStore) get(ctx context.Context, id string) (*dto.FormSession, error) {
	var session dto.FormSession
	hit, err := r.cache.Get(ctx, formKey(id), &session)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, appErrors.ErrFormSessionExpired
	}
	return &session, nil
}

func (r *redisFormStore) put(ctx context.Context, session dto.FormSession) error {
	return r.cache.Set(ctx, formKey(session.ID), session, r.ttl)
}

func (r *redisFormStore) del(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, formKey(id))
}

// memoryFormStore is the single-process fallback used when Redis is not
// configured.
type memoryFormStore struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]memoryFormEntry
}

type memoryFormEntry struct {
	session   dto.FormSession
	expiresAt time.Time
}

func newMemoryFormStore(ttl time.Duration) *memoryFormStore {
	return &memoryFormStore{ttl: ttl, m: make(map[string]memoryFormEntry)}
}

func (s *memoryFormStore) get(_ context.Context, id string) (*dto.FormSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.m[id]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.m, id)
		return nil, appErrors.ErrFormSessionExpired
	}
	session := entry.session
	return &session, nil
}

func (s *memoryFormStore) put(_ context.Context, session dto.FormSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[session.ID] = memoryFormEntry{session: session, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *memoryFormStore) del(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}
