package ports

import (
	"context"

	"github.com/simplecrm/crm-system/internal/core/domain"
)

// CreateRequestInput carries the data for creating a request. Status is not
// accepted from the caller: every new request starts at domain.StatusNew.
type CreateRequestInput struct {
	Title               string
	Description         string
	ResponsibleEmployee string
}

// UpdateRequestInput carries the data for editing a request. PathID is the id
// the caller addressed; ID is the id in the submitted body. The two must
// match or the edit is treated as a lookup failure.
type UpdateRequestInput struct {
	PathID              int
	ID                  int
	Title               string
	Description         string
	Status              string
	ResponsibleEmployee string
}

// ListRequestsInput carries the listing query parameters.
type ListRequestsInput struct {
	Status string
	Sort   string
}

// SortTokens are the toggle values for the sortable column headers: applying
// the token of a column re-sorts by that column, flipping direction when it
// is already the active ascending sort.
type SortTokens struct {
	Date   string
	Status string
}

// ListRequestsResult is returned by List.
type ListRequestsResult struct {
	Items        []*domain.Request
	StatusFilter string
	SortTokens   SortTokens
}

// RequestService defines the request lifecycle use cases.
type RequestService interface {
	Create(ctx context.Context, input CreateRequestInput) (*domain.Request, error)
	Get(ctx context.Context, id int) (*domain.Request, error)
	List(ctx context.Context, input ListRequestsInput) (*ListRequestsResult, error)
	Update(ctx context.Context, input UpdateRequestInput) (*domain.Request, error)
	// Delete commits the destructive step of the two-step delete. Deleting an
	// id that is already gone is a silent success.
	Delete(ctx context.Context, id int) error
}
