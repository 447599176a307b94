package services

import (
	"context"
	"time"

	"kesher_server/apperrors"
	"kesher_server/models"
	"kesher_server/repositories"
	"kesher_server/utils"

	"go.uber.org/zap"
)

// ProfileUpdate carries the updatable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name      *string             `json:"name,omitempty"`
	Birthdate *string             `json:"birthdate,omitempty"`
	Gender    *string             `json:"gender,omitempty"`
	Seeking   *string             `json:"seeking,omitempty"`
	Bio       *string             `json:"bio,omitempty"`
	Location  *models.Location    `json:"location,omitempty"`
	Interests *[]string           `json:"interests,omitempty"`
	Prefs     *models.SearchPrefs `json:"prefs,omitempty"`
	Plan      *string             `json:"plan,omitempty"`
	Photos    *[]models.Photo     `json:"photos,omitempty"`
	Devices   *[]models.Device    `json:"devices,omitempty"`
}

// ProfileService owns profile CRUD and the public-profile projection sync.
type ProfileService struct {
	Profiles repositories.ProfileRepository
	Events   Events
}

func NewProfileService(profiles repositories.ProfileRepository, events Events) *ProfileService {
	return &ProfileService{Profiles: profiles, Events: events}
}

func validatePrefs(prefs *models.SearchPrefs) error {
	if prefs == nil {
		return nil
	}
	if prefs.AgeMin < models.MinPrefAge {
		return apperrors.Newf(apperrors.InvalidArgument, "ageMin must be at least %d", models.MinPrefAge)
	}
	if prefs.AgeMin > prefs.AgeMax {
		return apperrors.New(apperrors.InvalidArgument, "ageMin must not exceed ageMax")
	}
	return nil
}

func validateInterests(interests []string) error {
	if len(interests) > models.MaxInterests {
		return apperrors.Newf(apperrors.InvalidArgument, "at most %d interests allowed", models.MaxInterests)
	}
	return nil
}

func validatePhotos(photos []models.Photo) error {
	if len(photos) > models.MaxPhotos {
		return apperrors.Newf(apperrors.InvalidArgument, "at most %d photos allowed", models.MaxPhotos)
	}
	return nil
}

func validateBirthdate(birthdate string) error {
	if birthdate == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", birthdate); err != nil {
		return apperrors.New(apperrors.InvalidArgument, "birthdate must be YYYY-MM-DD")
	}
	return nil
}

// CreateProfile stores a new profile and publishes a profile-written event.
func (s *ProfileService) CreateProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if err := validateUserID(profile.UserID); err != nil {
		return nil, err
	}
	if err := validateBirthdate(profile.Birthdate); err != nil {
		return nil, err
	}
	if err := validatePrefs(profile.Prefs); err != nil {
		return nil, err
	}
	if err := validateInterests(profile.Interests); err != nil {
		return nil, err
	}
	if err := validatePhotos(profile.Photos); err != nil {
		return nil, err
	}

	if profile.Plan == "" {
		profile.Plan = models.PlanFree
	}
	if profile.Prefs == nil {
		profile.Prefs = &models.SearchPrefs{
			AgeMin:        models.MinPrefAge,
			AgeMax:        99,
			MaxDistanceKm: 500,
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	profile.CreatedAt = now
	profile.UpdatedAt = now
	profile.ActiveMatchID = ""

	if err := s.Profiles.Put(ctx, profile); err != nil {
		return nil, err
	}

	s.Events.ProfileWritten(profile.UserID, &profile)
	return &profile, nil
}

// GetProfile returns the read projection with the age derived from the
// birthdate (never stored).
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.ProfileView, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	profile, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &models.ProfileView{
		UserID:    profile.UserID,
		Name:      profile.Name,
		Gender:    profile.Gender,
		Seeking:   profile.Seeking,
		Location:  profile.Location,
		City:      profile.City(),
		Bio:       profile.Bio,
		Interests: profile.Interests,
		Prefs:     profile.Prefs,
		Plan:      profile.Plan,
		Photos:    profile.Photos,
	}
	if age, ok := utils.CalculateAge(profile.Birthdate); ok {
		view.Age = &age
	}
	return view, nil
}

// UpdateProfile applies the non-nil fields and publishes a profile-written
// event with the updated document.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.UserProfile, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Birthdate != nil {
		if err := validateBirthdate(*update.Birthdate); err != nil {
			return nil, err
		}
		updates["birthdate"] = *update.Birthdate
	}
	if update.Gender != nil {
		updates["gender"] = *update.Gender
	}
	if update.Seeking != nil {
		updates["seeking"] = *update.Seeking
	}
	if update.Bio != nil {
		updates["bio"] = *update.Bio
	}
	if update.Location != nil {
		updates["location"] = *update.Location
	}
	if update.Interests != nil {
		if err := validateInterests(*update.Interests); err != nil {
			return nil, err
		}
		updates["interests"] = *update.Interests
	}
	if update.Prefs != nil {
		if err := validatePrefs(update.Prefs); err != nil {
			return nil, err
		}
		updates["prefs"] = *update.Prefs
	}
	if update.Plan != nil {
		updates["plan"] = *update.Plan
	}
	if update.Photos != nil {
		if err := validatePhotos(*update.Photos); err != nil {
			return nil, err
		}
		updates["photos"] = *update.Photos
	}
	if update.Devices != nil {
		updates["devices"] = *update.Devices
	}

	if len(updates) == 0 {
		return nil, apperrors.New(apperrors.InvalidArgument, "no updatable fields provided")
	}
	updates["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	updated, err := s.Profiles.Update(ctx, userID, updates)
	if err != nil {
		return nil, err
	}

	s.Events.ProfileWritten(userID, updated)
	return updated, nil
}

// DeleteProfile removes the profile; the projection follows via the event.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := s.Profiles.Delete(ctx, userID); err != nil {
		return err
	}
	s.Events.ProfileWritten(userID, nil)
	return nil
}

// SyncPublicProfile refreshes (or deletes) the denormalized public
// projection for a profile write. Invoked from the event dispatcher.
func (s *ProfileService) SyncPublicProfile(ctx context.Context, userID string, profile *models.UserProfile) error {
	if profile == nil {
		zap.S().Infof("🧹 deleting public profile for removed user %s", userID)
		return s.Profiles.DeletePublicProfile(ctx, userID)
	}

	public := models.PublicProfile{
		UserID:    userID,
		Name:      profile.Name,
		Gender:    profile.Gender,
		City:      profile.City(),
		Tags:      profile.Interests,
		Plan:      profile.Plan,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if public.Plan == "" {
		public.Plan = models.PlanFree
	}
	if age, ok := utils.CalculateAge(profile.Birthdate); ok {
		public.Age = &age
	}
	if len(profile.Photos) > 0 {
		public.Photo = profile.Photos[0].URL
	}

	return s.Profiles.PutPublicProfile(ctx, public)
}
