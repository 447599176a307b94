package services

import (
	"context"
	"sync"

	"kesher_server/apperrors"
	"kesher_server/models"
)

// fakeProfileRepo is a function-field fake: tests set only the methods the
// code under test touches.
type fakeProfileRepo struct {
	GetFn               func(ctx context.Context, userID string) (*models.UserProfile, error)
	PutFn               func(ctx context.Context, profile models.UserProfile) error
	UpdateFn            func(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserProfile, error)
	DeleteFn            func(ctx context.Context, userID string) error
	ScanByGenderFn      func(ctx context.Context, gender string, limit int32) ([]models.UserProfile, error)
	SetDevicesFn        func(ctx context.Context, userID string, devices []models.Device) error
	PutPublicProfileFn  func(ctx context.Context, profile models.PublicProfile) error
	DeletePublicProfFn  func(ctx context.Context, userID string) error
}

func (f *fakeProfileRepo) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	return f.GetFn(ctx, userID)
}

func (f *fakeProfileRepo) Put(ctx context.Context, profile models.UserProfile) error {
	return f.PutFn(ctx, profile)
}

func (f *fakeProfileRepo) Update(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserProfile, error) {
	return f.UpdateFn(ctx, userID, updates)
}

func (f *fakeProfileRepo) Delete(ctx context.Context, userID string) error {
	return f.DeleteFn(ctx, userID)
}

func (f *fakeProfileRepo) ScanByGender(ctx context.Context, gender string, limit int32) ([]models.UserProfile, error) {
	return f.ScanByGenderFn(ctx, gender, limit)
}

func (f *fakeProfileRepo) SetDevices(ctx context.Context, userID string, devices []models.Device) error {
	return f.SetDevicesFn(ctx, userID, devices)
}

func (f *fakeProfileRepo) PutPublicProfile(ctx context.Context, profile models.PublicProfile) error {
	return f.PutPublicProfileFn(ctx, profile)
}

func (f *fakeProfileRepo) DeletePublicProfile(ctx context.Context, userID string) error {
	return f.DeletePublicProfFn(ctx, userID)
}

// profileRepoWith returns a fake whose Get serves the given profiles by id.
func profileRepoWith(profiles ...*models.UserProfile) *fakeProfileRepo {
	byID := map[string]*models.UserProfile{}
	for _, p := range profiles {
		byID[p.UserID] = p
	}
	return &fakeProfileRepo{
		GetFn: func(ctx context.Context, userID string) (*models.UserProfile, error) {
			if p, ok := byID[userID]; ok {
				return p, nil
			}
			return nil, apperrors.New(apperrors.NotFound, "user not found")
		},
	}
}

// memMatchRepo enforces the one-active-match invariant with a mutex, the
// same check-and-set the storage transaction provides.
type memMatchRepo struct {
	mu       sync.Mutex
	matches  map[string]models.Match
	pointers map[string]string
}

func newMemMatchRepo() *memMatchRepo {
	return &memMatchRepo{
		matches:  map[string]models.Match{},
		pointers: map[string]string{},
	}
}

func (r *memMatchRepo) Get(ctx context.Context, matchID string) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[matchID]
	if !ok {
		return nil, apperrors.New(apperrors.NotFound, "match not found")
	}
	return &match, nil
}

func (r *memMatchRepo) CreateActiveMatch(ctx context.Context, match models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, userID := range match.Users {
		if r.pointers[userID] != "" {
			return apperrors.New(apperrors.FailedPrecondition, "a participant already has an active match")
		}
	}
	r.matches[match.MatchID] = match
	for _, userID := range match.Users {
		r.pointers[userID] = match.MatchID
	}
	return nil
}

func (r *memMatchRepo) Close(ctx context.Context, match models.Match, closedBy, reason, at string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.matches[match.MatchID]
	if !ok || stored.State != models.MatchStateActive {
		return apperrors.New(apperrors.FailedPrecondition, "match is not active")
	}
	stored.State = models.MatchStateClosed
	stored.ClosedBy = closedBy
	stored.CloseReason = reason
	stored.ClosedAt = at
	stored.UpdatedAt = at
	r.matches[match.MatchID] = stored
	for _, userID := range stored.Users {
		if r.pointers[userID] == match.MatchID {
			delete(r.pointers, userID)
		}
	}
	return nil
}

func (r *memMatchRepo) GetActiveMatchID(ctx context.Context, userID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pointers[userID], nil
}

func (r *memMatchRepo) TouchLastMessage(ctx context.Context, matchID, at string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	match, ok := r.matches[matchID]
	if !ok {
		return apperrors.New(apperrors.NotFound, "match not found")
	}
	match.LastMessageAt = at
	r.matches[matchID] = match
	return nil
}

// memMessageRepo stores messages in append order.
type memMessageRepo struct {
	mu       sync.Mutex
	messages []models.Message
}

func (r *memMessageRepo) Put(ctx context.Context, message models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return nil
}

func (r *memMessageRepo) ListByMatch(ctx context.Context, matchID string, limit int32) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Message{}
	for _, m := range r.messages {
		if m.MatchID == matchID {
			out = append(out, m)
		}
		if limit > 0 && int32(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (r *memMessageRepo) MarkRead(ctx context.Context, matchID, readerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	updated := 0
	for i, m := range r.messages {
		if m.MatchID == matchID && m.SenderID != readerID && m.Status != models.MessageStatusRead {
			r.messages[i].Status = models.MessageStatusRead
			updated++
		}
	}
	return updated, nil
}

// memStarterRepo stores starters keyed by match.
type memStarterRepo struct {
	mu       sync.Mutex
	starters map[string][]models.Starter
}

func newMemStarterRepo() *memStarterRepo {
	return &memStarterRepo{starters: map[string][]models.Starter{}}
}

func (r *memStarterRepo) Exists(ctx context.Context, matchID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.starters[matchID]) > 0, nil
}

func (r *memStarterRepo) PutBatch(ctx context.Context, starters []models.Starter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range starters {
		r.starters[s.MatchID] = append(r.starters[s.MatchID], s)
	}
	return nil
}

func (r *memStarterRepo) ListByMatch(ctx context.Context, matchID string) ([]models.Starter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.starters[matchID], nil
}

func (r *memStarterRepo) MarkUsed(ctx context.Context, matchID string, order int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.starters[matchID] {
		if s.Order == order {
			r.starters[matchID][i].Used = true
			return nil
		}
	}
	return apperrors.New(apperrors.NotFound, "starter not found")
}

// recordingEvents captures published events for assertions.
type recordingEvents struct {
	mu       sync.Mutex
	matches  []models.Match
	messages []models.Message
	profiles []string
}

func (e *recordingEvents) MatchCreated(match models.Match) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.matches = append(e.matches, match)
}

func (e *recordingEvents) MessageCreated(match models.Match, message models.Message) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = append(e.messages, message)
}

func (e *recordingEvents) ProfileWritten(userID string, profile *models.UserProfile) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profiles = append(e.profiles, userID)
}
