package services

import (
	"context"
	"fmt"
	"math"

	"kesher_server/models"
	"kesher_server/repositories"
	"kesher_server/utils"
)

// ScoreService computes rule-based compatibility scores. The model is a
// fixed linear combination, deterministic for identical inputs, so every
// score is auditable and reproducible.
type ScoreService struct {
	Profiles repositories.ProfileRepository
}

func NewScoreService(profiles repositories.ProfileRepository) *ScoreService {
	return &ScoreService{Profiles: profiles}
}

// Score rates a candidate against the source user's profile.
// Base 0.5; up to +0.3 for shared interests (0.1 each); up to +0.2 for
// proximity (linear falloff over 100 km); +0.05 for a profile with at least
// three photos. Clamped to [0,1], rounded to two decimals.
func (s *ScoreService) Score(ctx context.Context, sourceUserID string, candidate models.Candidate) (models.Score, error) {
	profile, err := s.Profiles.Get(ctx, sourceUserID)
	if err != nil {
		return models.Score{}, err
	}

	value := 0.5
	reasons := []string{}

	shared := utils.Intersection(profile.Interests, candidate.Interests)
	value += math.Min(float64(len(shared))*0.1, 0.3)
	if len(shared) > 0 {
		reasons = append(reasons, fmt.Sprintf("%d shared interests", len(shared)))
	}

	if candidate.DistanceKm != nil {
		value += math.Max(0, 0.2-(*candidate.DistanceKm/100)*0.2)
		if *candidate.DistanceKm < 10 {
			reasons = append(reasons, "geographically close")
		}
	}

	if len(candidate.Photos) >= 3 {
		value += 0.05
		reasons = append(reasons, "profile with photos")
	}

	value = math.Min(math.Max(value, 0), 1)
	value = math.Round(value*100) / 100

	if len(reasons) == 0 {
		reasons = append(reasons, "basic compatibility")
	}

	return models.Score{Value: value, Reasons: reasons}, nil
}

// SharedInterests returns the interest intersection of two users, in userA's
// list order.
func (s *ScoreService) SharedInterests(ctx context.Context, userA, userB string) ([]string, error) {
	profileA, err := s.Profiles.Get(ctx, userA)
	if err != nil {
		return nil, err
	}
	profileB, err := s.Profiles.Get(ctx, userB)
	if err != nil {
		return nil, err
	}
	return utils.Intersection(profileA.Interests, profileB.Interests), nil
}
