package store

import (
	"sync"

	"github.com/mathcode/tutor-admin-api/internal/models"
)

// SessionStore owns the cached session list.
type SessionStore struct {
	mu       sync.RWMutex
	sessions []models.Session
	loading  bool
	lastErr  string
	dialog   *models.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Replace swaps in a freshly fetched list and clears the error flag.
func (s *SessionStore) Replace(sessions []models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = sessions
	s.lastErr = ""
	s.loading = false
}

// Fail records a refresh failure. The previous list stays intact.
func (s *SessionStore) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err.Error()
	s.loading = false
}

func (s *SessionStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// All returns a copy of the current list.
func (s *SessionStore) All() []models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

func (s *SessionStore) Get(id string) (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess, true
		}
	}
	return models.Session{}, false
}

// ApplyCreate prepends the server-assigned record so it shows first.
func (s *SessionStore) ApplyCreate(sess models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append([]models.Session{sess}, s.sessions...)
}

// ApplyUpdate merges a partial patch into the matching record without a
// fresh refresh. Derived fields may lag the server until the next refresh.
func (s *SessionStore) ApplyUpdate(id string, patch models.UpdateSessionData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID != id {
			continue
		}
		if patch.Subject != nil {
			s.sessions[i].Subject = *patch.Subject
		}
		if patch.Date != nil {
			s.sessions[i].Date = *patch.Date
		}
		if patch.Time != nil {
			s.sessions[i].Time = *patch.Time
		}
		if patch.Duration != nil {
			s.sessions[i].Duration = *patch.Duration
		}
		if patch.PackageType != nil {
			s.sessions[i].PackageType = *patch.PackageType
		}
		if patch.CreditsUsed != nil {
			s.sessions[i].CreditsUsed = *patch.CreditsUsed
		}
		if patch.MeetingLink != nil {
			s.sessions[i].MeetingLink = *patch.MeetingLink
		}
		if patch.Notes != nil {
			s.sessions[i].Notes = *patch.Notes
		}
		if patch.SessionNotes != nil {
			s.sessions[i].SessionNotes = *patch.SessionNotes
		}
		if patch.Rating != nil {
			s.sessions[i].Rating = *patch.Rating
		}
		if patch.Feedback != nil {
			s.sessions[i].Feedback = *patch.Feedback
		}
		return
	}
}

// ApplyStatus records a lifecycle move locally.
func (s *SessionStore) ApplyStatus(id, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions[i].Status = status
			return
		}
	}
}

// ApplyDelete filters the id out of the list.
func (s *SessionStore) ApplyDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.sessions[:0]
	for _, sess := range s.sessions {
		if sess.ID != id {
			filtered = append(filtered, sess)
		}
	}
	s.sessions = filtered
}

// OpenDialog selects a record for the detail view by id. Safe before the
// list has loaded.
func (s *SessionStore) OpenDialog(id string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		if sess.ID == id {
			selected := sess
			s.dialog = &selected
			return s.dialog
		}
	}
	s.dialog = nil
	return nil
}

func (s *SessionStore) Dialog() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dialog
}

func (s *SessionStore) CloseDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog = nil
}

// Count reports the current list size.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
