// Package store holds the console's authoritative in-memory copies of the
// platform entity lists, plus the loading and error flags the views read.
// A failed refresh keeps the previous list; stale data beats no data.
package store

import (
	"sync"

	"github.com/mathcode/tutor-admin-api/internal/models"
)

// UserStore owns the cached user list.
type UserStore struct {
	mu      sync.RWMutex
	users   []models.User
	loading bool
	lastErr string
	dialog  *models.User
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *UserStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Replace swaps in a freshly fetched list and clears the error flag.
func (s *UserStore) Replace(users []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.lastErr = ""
	s.loading = false
}

// Fail records a refresh failure. The previous list stays intact.
func (s *UserStore) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err.Error()
	s.loading = false
}

func (s *UserStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// All returns a copy of the current list.
func (s *UserStore) All() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *UserStore) Get(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// ApplyCreate prepends the server-assigned record so it shows first.
func (s *UserStore) ApplyCreate(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]models.User{u}, s.users...)
}

// ApplyUpdate replaces the matching record with the server's copy. No
// fresh list refresh happens; the rest of the list may be stale until the
// next explicit refresh.
func (s *UserStore) ApplyUpdate(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return
		}
	}
}

// ApplyDelete filters the id out of the list.
func (s *UserStore) ApplyDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			filtered = append(filtered, u)
		}
	}
	s.users = filtered
}

// OpenDialog selects a record for the detail view by id. Safe before the
// list has loaded; an unknown id leaves the dialog closed.
func (s *UserStore) OpenDialog(id string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			selected := u
			s.dialog = &selected
			return s.dialog
		}
	}
	s.dialog = nil
	return nil
}

// OpenDialogRecord selects a record passed in directly.
func (s *UserStore) OpenDialogRecord(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	selected := u
	s.dialog = &selected
}

func (s *UserStore) Dialog() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dialog
}

func (s *UserStore) CloseDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog = nil
}

// Count reports the current list size.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
