package consent

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepository implements Repository using in-memory storage.
// Useful for development, demos and tests; all data is lost on shutdown.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewInMemoryRepository creates an empty in-memory consent repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		records: make(map[uuid.UUID]Record),
	}
}

// Create stores a new consent record.
func (r *InMemoryRepository) Create(ctx context.Context, record Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.ID] = cloneRecord(record)
	return record, nil
}

// Get retrieves a consent record by ID.
func (r *InMemoryRepository) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return cloneRecord(record), nil
}

// ListBySubject retrieves all consent records for a subject, newest first.
func (r *InMemoryRepository) ListBySubject(ctx context.Context, subjectID string) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Record
	for _, record := range r.records {
		if record.SubjectID == subjectID {
			out = append(out, cloneRecord(record))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GivenAt.After(out[j].GivenAt)
	})
	return out, nil
}

// FindActive retrieves the most recent active consent record for a
// subject and domain.
func (r *InMemoryRepository) FindActive(ctx context.Context, subjectID, domain string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *Record
	for _, record := range r.records {
		if record.SubjectID != subjectID || record.Domain != domain || record.Status != StatusActive {
			continue
		}
		if found == nil || record.GivenAt.After(found.GivenAt) {
			copied := cloneRecord(record)
			found = &copied
		}
	}
	if found == nil {
		return Record{}, ErrRecordNotFound
	}
	return *found, nil
}

// Update replaces an existing consent record.
func (r *InMemoryRepository) Update(ctx context.Context, record Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return Record{}, ErrRecordNotFound
	}
	r.records[record.ID] = cloneRecord(record)
	return record, nil
}

// cloneRecord keeps stored purpose maps isolated from caller mutation.
func cloneRecord(record Record) Record {
	purposes := make(map[string]bool, len(record.Purposes))
	for k, v := range record.Purposes {
		purposes[k] = v
	}
	record.Purposes = purposes
	return record
}
