package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"kesher_server/models"
	"kesher_server/repositories"
	"kesher_server/utils"

	"go.uber.org/zap"
)

// funQuestions is the fixed pool the third starter is drawn from. This is
// the only non-deterministic slot.
var funQuestions = []string{
	"%s, if you could fly anywhere in the world right now, where would you go?",
	"Hey %s! Coffee or tea? And do you have a secret recipe for either?",
	"%s, what's the most spontaneous thing you've done lately?",
	"Hi %s! If you had to pick one breakfast to eat for the rest of your life, what would it be?",
	"%s, tell me - what's the last book or movie that really stayed with you?",
}

// StarterService generates the three conversation openers attached to a new
// match. It reacts to the match-created event; it is never polled.
type StarterService struct {
	Starters repositories.StarterRepository
	Profiles repositories.ProfileRepository

	// pick selects the fun-question template; swappable in tests.
	pick func(n int) int
}

func NewStarterService(starters repositories.StarterRepository, profiles repositories.ProfileRepository) *StarterService {
	return &StarterService{
		Starters: starters,
		Profiles: profiles,
		pick:     rand.Intn,
	}
}

// GenerateStarters writes exactly three starters for the match, ordinals
// 1-3, in fixed slot order: shared interest, city, fun question. Duplicate
// event deliveries are skipped when starters already exist, so the used
// flags the UI may have flipped are never clobbered.
func (s *StarterService) GenerateStarters(ctx context.Context, match models.Match) error {
	exists, err := s.Starters.Exists(ctx, match.MatchID)
	if err != nil {
		return err
	}
	if exists {
		zap.S().Infof("ℹ️ starters already exist for match %s, skipping", match.MatchID)
		return nil
	}

	if len(match.Users) != 2 {
		return fmt.Errorf("match %s does not have two participants", match.MatchID)
	}
	userA, err := s.Profiles.Get(ctx, match.Users[0])
	if err != nil {
		return err
	}
	userB, err := s.Profiles.Get(ctx, match.Users[1])
	if err != nil {
		return err
	}

	texts := buildStarters(userA, userB, s.pick)

	now := time.Now().UTC().Format(time.RFC3339)
	starters := make([]models.Starter, 0, len(texts))
	for i, t := range texts {
		starters = append(starters, models.Starter{
			MatchID:   match.MatchID,
			Order:     i + 1,
			Text:      t.text,
			Tag:       t.tag,
			Used:      false,
			CreatedAt: now,
		})
	}

	if err := s.Starters.PutBatch(ctx, starters); err != nil {
		return err
	}
	zap.S().Infof("✅ created %d starters for match %s", len(starters), match.MatchID)
	return nil
}

// ListStarters returns a match's starters ordered by ordinal.
func (s *StarterService) ListStarters(ctx context.Context, matchID string) ([]models.Starter, error) {
	return s.Starters.ListByMatch(ctx, matchID)
}

// MarkStarterUsed flags a starter as consumed by the UI.
func (s *StarterService) MarkStarterUsed(ctx context.Context, matchID string, order int) error {
	return s.Starters.MarkUsed(ctx, matchID, order)
}

type starterText struct {
	text string
	tag  string
}

func buildStarters(userA, userB *models.UserProfile, pick func(n int) int) []starterText {
	name := userB.Name
	if name == "" {
		name = "there"
	}

	starters := make([]starterText, 0, 3)

	// Slot 1: first shared interest, else a generic opener.
	shared := utils.Intersection(userA.Interests, userB.Interests)
	if len(shared) > 0 {
		starters = append(starters, starterText{
			text: fmt.Sprintf("Hey %s! I saw you're into %s too. What's the most memorable experience you've had with it?", name, shared[0]),
			tag:  "shared interests",
		})
	} else {
		starters = append(starters, starterText{
			text: fmt.Sprintf("Hey %s! Great to meet you. What's been making you happy lately?", name),
			tag:  "icebreaker",
		})
	}

	// Slot 2: the other side's city, else a generic follow-up.
	if city := userB.City(); city != "" {
		starters = append(starters, starterText{
			text: fmt.Sprintf("Hi %s! So cool that you're from %s. Any favorite spot in town you'd recommend?", name, city),
			tag:  "location",
		})
	} else {
		starters = append(starters, starterText{
			text: fmt.Sprintf("%s, tell me - what's the most interesting thing that happened to you this week?", name),
			tag:  "small talk",
		})
	}

	// Slot 3: a random line from the fixed pool.
	starters = append(starters, starterText{
		text: fmt.Sprintf(funQuestions[pick(len(funQuestions))], name),
		tag:  "fun question",
	})

	return starters
}
