package services

import (
	"context"
	"time"

	"kesher_server/apperrors"
	"kesher_server/metrics"
	"kesher_server/models"
	"kesher_server/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchService owns the match lifecycle: no-active-match -> active -> closed.
// Closed is terminal; closing is the only path back to no-active-match.
type MatchService struct {
	Matches  repositories.MatchRepository
	Profiles repositories.ProfileRepository
	Events   Events
}

func NewMatchService(matches repositories.MatchRepository, profiles repositories.ProfileRepository, events Events) *MatchService {
	return &MatchService{Matches: matches, Profiles: profiles, Events: events}
}

func validateUserID(userID string) error {
	if len(userID) < 6 {
		return apperrors.New(apperrors.InvalidArgument, "invalid userId")
	}
	return nil
}

func validateMatchID(matchID string) error {
	if len(matchID) < 8 {
		return apperrors.New(apperrors.InvalidArgument, "invalid matchId")
	}
	return nil
}

// CreateMatch creates an active match between two users. The check that
// neither side already holds an active match and the creation itself are a
// single atomic write, so concurrent attempts involving the same user can
// never both succeed. Precondition failures are reported, not retried: the
// caller reads them as "no mutual match yet".
func (s *MatchService) CreateMatch(ctx context.Context, userA, userB string, score float64) (*models.Match, error) {
	if err := validateUserID(userA); err != nil {
		return nil, err
	}
	if err := validateUserID(userB); err != nil {
		return nil, err
	}
	if userA == userB {
		return nil, apperrors.New(apperrors.InvalidArgument, "cannot match a user with themselves")
	}
	if score < 0 || score > 1 {
		return nil, apperrors.New(apperrors.InvalidArgument, "score must be a number between 0 and 1")
	}

	// Both sides must resolve to real profiles before the transaction runs.
	if _, err := s.Profiles.Get(ctx, userA); err != nil {
		return nil, err
	}
	if _, err := s.Profiles.Get(ctx, userB); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	match := models.Match{
		MatchID:   uuid.NewString(),
		Users:     []string{userA, userB},
		State:     models.MatchStateActive,
		Score:     score,
		OpenedBy:  userA,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Matches.CreateActiveMatch(ctx, match); err != nil {
		return nil, err
	}

	metrics.MatchesCreated.Inc()
	zap.S().Infof("✅ match %s created between %s and %s", match.MatchID, userA, userB)
	s.Events.MatchCreated(match)
	return &match, nil
}

// GetMatch returns a match by id.
func (s *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	if err := validateMatchID(matchID); err != nil {
		return nil, err
	}
	return s.Matches.Get(ctx, matchID)
}

// GetActiveMatch returns the user's single active match, or nil when the
// user is free to enter a new one. A caller with no stored profile has no
// active match either; that is not an error.
func (s *MatchService) GetActiveMatch(ctx context.Context, userID string) (*models.Match, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	matchID, err := s.Matches.GetActiveMatchID(ctx, userID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.NotFound) {
			return nil, nil
		}
		return nil, err
	}
	if matchID == "" {
		return nil, nil
	}

	match, err := s.Matches.Get(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.State != models.MatchStateActive {
		return nil, nil
	}
	return match, nil
}

// CloseMatch transitions a match to its terminal closed state. Either
// participant may close; a closed match is never resurrected.
func (s *MatchService) CloseMatch(ctx context.Context, matchID, closerID, reason string) error {
	if err := validateMatchID(matchID); err != nil {
		return err
	}
	if reason == "" {
		reason = "closed by user"
	}
	if len([]rune(reason)) > models.MaxCloseReasonLen {
		return apperrors.Newf(apperrors.InvalidArgument,
			"close reason must be at most %d characters", models.MaxCloseReasonLen)
	}

	match, err := s.Matches.Get(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasParticipant(closerID) {
		return apperrors.New(apperrors.PermissionDenied, "not a participant of this match")
	}
	if match.State != models.MatchStateActive {
		return apperrors.New(apperrors.FailedPrecondition, "match is already closed")
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := s.Matches.Close(ctx, *match, closerID, reason, now); err != nil {
		return err
	}

	metrics.MatchesClosed.Inc()
	zap.S().Infof("✅ match %s closed by %s", matchID, closerID)
	return nil
}
