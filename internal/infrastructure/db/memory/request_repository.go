// Package memory provides an in-memory RequestRepository with the same
// filtering and sorting semantics as the MongoDB implementation. It backs
// unit tests and local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/simplecrm/crm-system/internal/core/domain"
	"github.com/simplecrm/crm-system/internal/core/ports"
)

type RequestRepository struct {
	mu     sync.RWMutex
	nextID int
	// order preserves insertion order so an unsorted List mirrors the
	// natural iteration order of a real storage engine.
	order    []int
	requests map[int]*domain.Request
}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{
		nextID:   1,
		requests: make(map[int]*domain.Request),
	}
}

func (r *RequestRepository) Create(_ context.Context, req *domain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req.ID = r.nextID
	r.nextID++

	clone := *req
	r.requests[req.ID] = &clone
	r.order = append(r.order, req.ID)
	return nil
}

func (r *RequestRepository) FindByID(_ context.Context, id int) (*domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *RequestRepository) List(_ context.Context, filter ports.ListRequestsFilter) ([]*domain.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*domain.Request, 0, len(r.order))
	for _, id := range r.order {
		req := r.requests[id]
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		clone := *req
		items = append(items, &clone)
	}

	switch filter.Sort {
	case ports.SortDateAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	case ports.SortDateDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[j].CreatedAt.Before(items[i].CreatedAt) })
	case ports.SortStatusAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Status < items[j].Status })
	case ports.SortStatusDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[j].Status < items[i].Status })
	}

	return items, nil
}

func (r *RequestRepository) Update(_ context.Context, req *domain.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.requests[req.ID]
	if !ok {
		return domain.ErrRequestNotFound
	}

	stored.Title = req.Title
	stored.Description = req.Description
	stored.Status = req.Status
	stored.ResponsibleEmployee = req.ResponsibleEmployee
	return nil
}

func (r *RequestRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[id]; !ok {
		return domain.ErrRequestNotFound
	}

	delete(r.requests, id)
	for i, storedID := range r.order {
		if storedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports the number of stored requests. Intended for tests.
func (r *RequestRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.requests)
}
