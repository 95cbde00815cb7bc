package ports

import (
	"context"

	"github.com/simplecrm/crm-system/internal/core/domain"
)

// Sort orders accepted by the listing endpoint. Any other value (including
// empty) leaves records in the storage engine's natural iteration order.
const (
	SortDateAsc    = "date_asc"
	SortDateDesc   = "date_desc"
	SortStatusAsc  = "status_asc"
	SortStatusDesc = "status_desc"
)

// ListRequestsFilter carries the query parameters for listing requests.
type ListRequestsFilter struct {
	Status string // exact, case-sensitive match on status; empty = no filter
	Sort   string // one of the Sort* constants; anything else = natural order
}

// RequestRepository defines persistence operations for requests.
type RequestRepository interface {
	// Create persists a new request, assigning its integer ID.
	Create(ctx context.Context, r *domain.Request) error
	FindByID(ctx context.Context, id int) (*domain.Request, error)
	List(ctx context.Context, filter ListRequestsFilter) ([]*domain.Request, error)
	// Update replaces title, description, status and responsible employee of
	// an existing request. ErrRequestNotFound when the id is unknown; there
	// is no upsert.
	Update(ctx context.Context, r *domain.Request) error
	// Delete removes a request by id. ErrRequestNotFound when nothing was
	// stored under the id; callers decide whether that matters.
	Delete(ctx context.Context, id int) error
}
