package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zulu-012/luct-reporting-system/internal/dto"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
)

// RatingGateway is the slice of the data gateway the rating surface uses.
type RatingGateway interface {
	FetchLectures(ctx context.Context) ([]models.LectureRecord, error)
	PostRating(ctx context.Context, rating models.Rating) error
	PostFeedback(ctx context.Context, feedback models.Feedback) error
}

// RatingService lets students rate past lectures and leave feedback. The
// stars a student has given are remembered per user so the interface can
// show them again; re-rating a lecture simply overwrites the remembered
// value with the latest one.
type RatingService struct {
	gateway RatingGateway
	cache   *CacheService
	logger  *zap.Logger
	ttl     time.Duration
	now     func() time.Time

	// In-process fallback when Redis is not configured.
	mu    sync.Mutex
	local map[int]map[int]int
}

// RatingServiceParams bundles dependencies for NewRatingService.
type RatingServiceParams struct {
	Gateway RatingGateway
	Cache   *CacheService
	Logger  *zap.Logger
	TTL     time.Duration
	Now     func() time.Time
}

// NewRatingService constructs a rating service.
func NewRatingService(p RatingServiceParams) *RatingService {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	if p.TTL <= 0 {
		p.TTL = 24 * time.Hour
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &RatingService{
		gateway: p.Gateway,
		cache:   p.Cache,
		logger:  p.Logger,
		ttl:     p.TTL,
		now:     p.Now,
		local:   make(map[int]map[int]int),
	}
}

func ratingsKey(userID int) string {
	return fmt.Sprintf("ratings:user:%d", userID)
}

func (s *RatingService) givenRatings(ctx context.Context, userID int) map[int]int {
	if s.cache.Enabled() {
		var given map[int]int
		if hit, err := s.cache.Get(ctx, ratingsKey(userID), &given); err == nil && hit {
			return given
		}
		return map[int]int{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]int, len(s.local[userID]))
	for k, v := range s.local[userID] {
		out[k] = v
	}
	return out
}

func (s *RatingService) rememberRating(ctx context.Context, userID, lectureID, rating int) {
	if s.cache.Enabled() {
		given := s.givenRatings(ctx, userID)
		given[lectureID] = rating
		_ = s.cache.Set(ctx, ratingsKey(userID), given, s.ttl)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.local[userID] == nil {
		s.local[userID] = make(map[int]int)
	}
	s.local[userID][lectureID] = rating
}

// RateableLectures returns past lectures, newest data as the gateway
// serves it, together with the caller's remembered stars. Only students
// rate.
func (s *RatingService) RateableLectures(ctx context.Context, sess models.Session) (*dto.RateableLecturesResponse, error) {
	if sess.User.Role != models.RoleStudent {
		return nil, appErrors.ErrForbidden
	}

	all, err := s.gateway.FetchLectures(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrLoadFailed.Code, appErrors.ErrLoadFailed.Status, "failed to load lectures")
	}

	today := s.now().UTC().Format("2006-01-02")
	past := make([]models.LectureRecord, 0, len(all))
	for _, l := range all {
		if l.DateOfLecture != "" && l.DateOfLecture <= today {
			past = append(past, l)
		}
	}

	return &dto.RateableLecturesResponse{
		Lectures: past,
		Ratings:  s.givenRatings(ctx, sess.User.ID),
	}, nil
}

// Rate stores a star rating with the gateway and remembers it for the
// caller. A second rating for the same lecture replaces the remembered
// value; the gateway decides how to fold repeats into its aggregate.
func (s *RatingService) Rate(ctx context.Context, sess models.Session, req dto.RateRequest) (*dto.RateResponse, error) {
	if sess.User.Role != models.RoleStudent {
		return nil, appErrors.ErrForbidden
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, appErrors.Wrap(nil, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"rating must be between 1 and 5")
	}

	if err := s.gateway.PostRating(ctx, models.Rating{LectureID: req.LectureID, Rating: req.Rating}); err != nil {
		return nil, err
	}
	s.rememberRating(ctx, sess.User.ID, req.LectureID, req.Rating)

	return &dto.RateResponse{
		LectureID: req.LectureID,
		Rating:    req.Rating,
		Label:     models.RatingLabel(float64(req.Rating)),
		Message:   "Rating submitted successfully!",
	}, nil
}

// SubmitFeedback forwards a free-text comment to the gateway.
func (s *RatingService) SubmitFeedback(ctx context.Context, sess models.Session, req dto.FeedbackRequest) error {
	if sess.User.Role != models.RoleStudent {
		return appErrors.ErrForbidden
	}
	if req.FeedbackText == "" {
		return appErrors.Wrap(nil, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"feedback text is required")
	}
	return s.gateway.PostFeedback(ctx, models.Feedback{LectureID: req.LectureID, FeedbackText: req.FeedbackText})
}
