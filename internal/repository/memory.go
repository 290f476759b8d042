package repository

import (
	"context"
	"sort"
	"sync"

	"typedrill/internal/models"
)

// NewMemoryStores creates a fresh set of in-memory stores. State lives for
// the lifetime of the process; each store serializes its own mutations
// behind a mutex so concurrent request handlers cannot race on the maps.
func NewMemoryStores() Stores {
	return Stores{
		Users:    NewMemoryUserStore(),
		Roles:    NewMemoryRoleStore(),
		Passages: NewMemoryPassageStore(),
		Results:  NewMemoryResultStore(),
	}
}

// MemoryUserStore keeps profiles in a map keyed by identity plus a
// secondary mobile index. Both maps are guarded by one mutex so that
// create and update apply as a single atomic step.
type MemoryUserStore struct {
	mu       sync.RWMutex
	profiles map[string]models.UserProfile
	byMobile map[string]string
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		profiles: make(map[string]models.UserProfile),
		byMobile: make(map[string]string),
	}
}

func (s *MemoryUserStore) CreateProfile(_ context.Context, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.Identity]; ok {
		return ErrProfileExists
	}
	if _, ok := s.byMobile[profile.Mobile]; ok {
		return ErrDuplicateMobile
	}

	s.profiles[profile.Identity] = *profile
	s.byMobile[profile.Mobile] = profile.Identity
	return nil
}

func (s *MemoryUserStore) GetProfile(_ context.Context, identity string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[identity]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (s *MemoryUserStore) GetProfileByMobile(_ context.Context, mobile string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.byMobile[mobile]
	if !ok {
		return nil, nil
	}
	profile := s.profiles[identity]
	return &profile, nil
}

func (s *MemoryUserStore) UpdateProfile(_ context.Context, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.profiles[profile.Identity]
	if !ok {
		return ErrNotFound
	}
	if profile.Mobile != current.Mobile {
		if _, taken := s.byMobile[profile.Mobile]; taken {
			return ErrDuplicateMobile
		}
		delete(s.byMobile, current.Mobile)
		s.byMobile[profile.Mobile] = profile.Identity
	}

	s.profiles[profile.Identity] = *profile
	return nil
}

func (s *MemoryUserStore) ListProfiles(_ context.Context) ([]models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]models.UserProfile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		profiles = append(profiles, profile)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Identity < profiles[j].Identity })
	return profiles, nil
}

// Reset drops all profiles and the mobile index.
func (s *MemoryUserStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = make(map[string]models.UserProfile)
	s.byMobile = make(map[string]string)
	return nil
}

// MemoryRoleStore holds role assignments per identity.
type MemoryRoleStore struct {
	mu    sync.RWMutex
	roles map[string]models.Role
}

// NewMemoryRoleStore creates an empty in-memory role store.
func NewMemoryRoleStore() *MemoryRoleStore {
	return &MemoryRoleStore{roles: make(map[string]models.Role)}
}

func (s *MemoryRoleStore) GetRole(_ context.Context, identity string) (models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[identity]
	if !ok {
		return models.RoleGuest, nil
	}
	return role, nil
}

func (s *MemoryRoleStore) SetRole(_ context.Context, identity string, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[identity] = role
	return nil
}

func (s *MemoryRoleStore) AdminExists(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, role := range s.roles {
		if role == models.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryRoleStore) ListRoles(_ context.Context) (map[string]models.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roles := make(map[string]models.Role, len(s.roles))
	for identity, role := range s.roles {
		roles[identity] = role
	}
	return roles, nil
}

// Reset drops all role assignments.
func (s *MemoryRoleStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles = make(map[string]models.Role)
	return nil
}

// MemoryPassageStore is the in-memory passage CRUD store.
type MemoryPassageStore struct {
	mu       sync.RWMutex
	passages map[string]models.Passage
}

// NewMemoryPassageStore creates an empty in-memory passage store.
func NewMemoryPassageStore() *MemoryPassageStore {
	return &MemoryPassageStore{passages: make(map[string]models.Passage)}
}

func (s *MemoryPassageStore) CreatePassage(_ context.Context, passage *models.Passage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passages[passage.ID] = *passage
	return nil
}

func (s *MemoryPassageStore) GetPassage(_ context.Context, id string) (*models.Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	passage, ok := s.passages[id]
	if !ok {
		return nil, nil
	}
	return &passage, nil
}

func (s *MemoryPassageStore) UpdatePassage(_ context.Context, passage *models.Passage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.passages[passage.ID]; !ok {
		return ErrNotFound
	}
	s.passages[passage.ID] = *passage
	return nil
}

func (s *MemoryPassageStore) DeletePassage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.passages[id]; !ok {
		return ErrNotFound
	}
	delete(s.passages, id)
	return nil
}

func (s *MemoryPassageStore) ListPassages(_ context.Context) ([]models.Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	passages := make([]models.Passage, 0, len(s.passages))
	for _, passage := range s.passages {
		passages = append(passages, passage)
	}
	sort.Slice(passages, func(i, j int) bool { return passages[i].ID < passages[j].ID })
	return passages, nil
}

func (s *MemoryPassageStore) CountPassages(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.passages), nil
}

// Reset drops all passages.
func (s *MemoryPassageStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passages = make(map[string]models.Passage)
	return nil
}

// MemoryResultStore is the in-memory append-only result ledger.
type MemoryResultStore struct {
	mu      sync.RWMutex
	results []models.TestResult
}

// NewMemoryResultStore creates an empty in-memory result ledger.
func NewMemoryResultStore() *MemoryResultStore {
	return &MemoryResultStore{}
}

func (s *MemoryResultStore) AppendResult(_ context.Context, result *models.TestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, *result)
	return nil
}

func (s *MemoryResultStore) ListResults(_ context.Context) ([]models.TestResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.TestResult, len(s.results))
	copy(results, s.results)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].SubmittedAt.Equal(results[j].SubmittedAt) {
			return results[i].ID < results[j].ID
		}
		return results[i].SubmittedAt.Before(results[j].SubmittedAt)
	})
	return results, nil
}

// Reset drops all recorded results.
func (s *MemoryResultStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	return nil
}
