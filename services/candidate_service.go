package services

import (
	"context"
	"math"

	"kesher_server/models"
	"kesher_server/repositories"
	"kesher_server/utils"

	"go.uber.org/zap"
)

// Discovery defaults applied when neither the filters nor the requester's
// stored preferences say otherwise.
const (
	defaultAgeMin        = 18
	defaultAgeMax        = 99
	defaultMaxDistanceKm = 500
	defaultLimit         = 20
	maxLimit             = 50
)

// CandidateFilters are optional per-query overrides of the requester's
// stored preferences.
type CandidateFilters struct {
	Gender        string   `json:"gender,omitempty"`
	AgeMin        *int     `json:"ageMin,omitempty"`
	AgeMax        *int     `json:"ageMax,omitempty"`
	MaxDistanceKm *float64 `json:"maxDistanceKm,omitempty"`
	Limit         int      `json:"limit,omitempty"`
}

// CandidateService finds nearby, age- and gender-filtered candidates for a
// requesting user.
type CandidateService struct {
	Profiles repositories.ProfileRepository
}

func NewCandidateService(profiles repositories.ProfileRepository) *CandidateService {
	return &CandidateService{Profiles: profiles}
}

// FindCandidates resolves the requester, applies the gender filter at the
// storage layer, then filters age band and distance cap in process.
//
// Results come back in storage order, not distance-sorted: ranking is the
// caller's job via the score operation.
func (s *CandidateService) FindCandidates(ctx context.Context, requesterID string, filters CandidateFilters) ([]models.Candidate, error) {
	requester, err := s.Profiles.Get(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	seeking := filters.Gender
	if seeking == "" {
		seeking = requester.Seeking
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	ageMin, ageMax, maxDistanceKm := effectiveBounds(requester.Prefs, filters)

	profiles, err := s.Profiles.ScanByGender(ctx, seeking, int32(limit))
	if err != nil {
		return nil, err
	}

	candidates := []models.Candidate{}
	for _, p := range profiles {
		if p.UserID == requesterID {
			continue
		}

		age, ok := utils.CalculateAge(p.Birthdate)
		if !ok || age < ageMin || age > ageMax {
			continue
		}

		distanceKm := 0.0
		if requester.Location != nil && p.Location != nil {
			distanceKm = utils.CalculateDistance(
				requester.Location.Lat, requester.Location.Lng,
				p.Location.Lat, p.Location.Lng,
			)
			if distanceKm > maxDistanceKm {
				continue
			}
		}

		photos := make([]string, 0, len(p.Photos))
		for _, photo := range p.Photos {
			if photo.URL != "" {
				photos = append(photos, photo.URL)
			}
		}

		rounded := math.Round(distanceKm)
		candidates = append(candidates, models.Candidate{
			UserID:     p.UserID,
			Name:       p.Name,
			Age:        age,
			City:       p.City(),
			DistanceKm: &rounded,
			Interests:  p.Interests,
			Photos:     photos,
		})
	}

	zap.S().Debugf("🔍 found %d candidates for %s", len(candidates), requesterID)
	return candidates, nil
}

func effectiveBounds(prefs *models.SearchPrefs, filters CandidateFilters) (int, int, float64) {
	ageMin := defaultAgeMin
	ageMax := defaultAgeMax
	maxDistanceKm := float64(defaultMaxDistanceKm)

	if prefs != nil {
		if prefs.AgeMin > 0 {
			ageMin = prefs.AgeMin
		}
		if prefs.AgeMax > 0 {
			ageMax = prefs.AgeMax
		}
		if prefs.MaxDistanceKm > 0 {
			maxDistanceKm = prefs.MaxDistanceKm
		}
	}
	if filters.AgeMin != nil {
		ageMin = *filters.AgeMin
	}
	if filters.AgeMax != nil {
		ageMax = *filters.AgeMax
	}
	if filters.MaxDistanceKm != nil {
		maxDistanceKm = *filters.MaxDistanceKm
	}
	return ageMin, ageMax, maxDistanceKm
}
