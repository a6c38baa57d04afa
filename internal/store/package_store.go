package store

import (
	"sync"

	"github.com/mathcode/tutor-admin-api/internal/models"
)

// PackageStore owns the cached package list.
type PackageStore struct {
	mu       sync.RWMutex
	packages []models.Package
	loading  bool
	lastErr  string
	dialog   *models.Package
}

func NewPackageStore() *PackageStore {
	return &PackageStore{}
}

func (s *PackageStore) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *PackageStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Replace swaps in a freshly fetched list and clears the error flag.
func (s *PackageStore) Replace(packages []models.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages = packages
	s.lastErr = ""
	s.loading = false
}

// Fail records a refresh failure. The previous list stays intact.
func (s *PackageStore) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err.Error()
	s.loading = false
}

func (s *PackageStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// All returns a copy of the current list.
func (s *PackageStore) All() []models.Package {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Package, len(s.packages))
	copy(out, s.packages)
	return out
}

func (s *PackageStore) Get(id string) (models.Package, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.packages {
		if p.ID == id {
			return p, true
		}
	}
	return models.Package{}, false
}

// ApplyCreate prepends the server-assigned record so it shows first.
func (s *PackageStore) ApplyCreate(p models.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages = append([]models.Package{p}, s.packages...)
}

// ApplyUpdate merges a partial patch into the matching record. Server-side
// derived fields may diverge until the next refresh; that staleness window
// is part of the contract.
func (s *PackageStore) ApplyUpdate(id string, patch models.UpdatePackageData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.packages {
		if s.packages[i].ID != id {
			continue
		}
		if patch.Status != nil {
			s.packages[i].Status = *patch.Status
		}
		if patch.Price != nil {
			s.packages[i].Price = *patch.Price
		}
		if patch.PackageType != nil {
			s.packages[i].PackageType = *patch.PackageType
		}
		if patch.MeetingLink != nil {
			s.packages[i].MeetingLink = *patch.MeetingLink
		}
		if patch.TutorID != nil {
			s.packages[i].TutorID = *patch.TutorID
		}
		return
	}
}

// ApplyAssignTutor records the pairing locally.
func (s *PackageStore) ApplyAssignTutor(id, tutorID, tutorName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.packages {
		if s.packages[i].ID == id {
			s.packages[i].TutorID = tutorID
			s.packages[i].TutorName = tutorName
			return
		}
	}
}

// ApplyDelete filters the id out of the list.
func (s *PackageStore) ApplyDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := s.packages[:0]
	for _, p := range s.packages {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	s.packages = filtered
}

// OpenDialog selects a record for the detail view by id. Safe before the
// list has loaded.
func (s *PackageStore) OpenDialog(id string) *models.Package {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.packages {
		if p.ID == id {
			selected := p
			s.dialog = &selected
			return s.dialog
		}
	}
	s.dialog = nil
	return nil
}

func (s *PackageStore) Dialog() *models.Package {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dialog
}

func (s *PackageStore) CloseDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog = nil
}

// CountByStatus reports how many packages carry the given status.
func (s *PackageStore) CountByStatus(status string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.packages {
		if p.Status == status {
			n++
		}
	}
	return n
}
