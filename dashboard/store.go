package dashboard

import (
	"sync"

	"github.com/google/uuid"
	"github.com/kimanzi254/consult_admin/models"
)

// Patch describes the fields a confirmed remote mutation changed on a single
// booking. Nil fields are left untouched by the merge.
type Patch struct {
	Status          *string
	RejectionReason *string
	MeetingLink     *string
}

// Store mirrors the bookings the admin page currently knows about, in the
// order the remote fetch returned them. Mutations swap the whole slice so a
// reader never observes a half-applied patch.
type Store struct {
	mu      sync.RWMutex
	records []models.Booking
	closed  bool
}

func NewStore() *Store {
	return &Store{}
}

// Load replaces the store contents with the fetched sequence.
func (s *Store) Load(records []models.Booking) {
	copied := make([]models.Booking, len(records))
	copy(copied, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.records = copied
}

// Patch merges p over the record with the matching id. An unknown id leaves
// the store unchanged; no record is ever added or removed here.
func (s *Store) Patch(id uuid.UUID, p Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.records = patchRecords(s.records, id, p)
}

// Snapshot returns a copy of the current records.
func (s *Store) Snapshot() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]models.Booking, len(s.records))
	copy(snapshot, s.records)
	return snapshot
}

// Close tears the store down. A remote call resolving after the admin has
// navigated away lands on a closed store and becomes a no-op.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.records = nil
}

func patchRecords(records []models.Booking, id uuid.UUID, p Patch) []models.Booking {
	patched := make([]models.Booking, len(records))
	for i, record := range records {
		if record.ID == id {
			record = applyPatch(record, p)
		}
		patched[i] = record
	}
	return patched
}

func applyPatch(record models.Booking, p Patch) models.Booking {
	if p.Status != nil {
		record.Status = *p.Status
	}
	if p.RejectionReason != nil {
		record.RejectionReason = p.RejectionReason
	}
	if p.MeetingLink != nil {
		record.MeetingLink = p.MeetingLink
	}
	return record
}
