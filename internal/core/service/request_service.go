package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/simplecrm/crm-system/internal/api/metrics"
	"github.com/simplecrm/crm-system/internal/core/domain"
	"github.com/simplecrm/crm-system/internal/core/ports"
)

type RequestService struct {
	repo   ports.RequestRepository
	logger zerolog.Logger
}

func NewRequestService(repo ports.RequestRepository, logger zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

// Create validates the input and persists a new request. The caller never
// supplies a status: every request starts at domain.StatusNew with a
// server-assigned creation time and id.
func (s *RequestService) Create(ctx context.Context, input ports.CreateRequestInput) (*domain.Request, error) {
	if verr := validateRequestFields(input.Title, input.Description); !verr.Empty() {
		return nil, verr
	}

	req := &domain.Request{
		CreatedAt:           time.Now().UTC(),
		Title:               input.Title,
		Description:         input.Description,
		Status:              domain.StatusNew,
		ResponsibleEmployee: input.ResponsibleEmployee,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		s.logger.Error().Err(err).Msg("failed to create request")
		return nil, err
	}

	metrics.RequestsCreatedTotal.Inc()
	s.logger.Info().Int("request_id", req.ID).Msg("request created")
	return req, nil
}

// Get returns a single request by id. It also serves as the read-only
// confirmation step of the two-step delete.
func (s *RequestService) Get(ctx context.Context, id int) (*domain.Request, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns the requests matching the optional status filter in the
// requested sort order, together with the toggle tokens for the sortable
// column headers.
func (s *RequestService) List(ctx context.Context, input ports.ListRequestsInput) (*ports.ListRequestsResult, error) {
	items, err := s.repo.List(ctx, ports.ListRequestsFilter{
		Status: input.Status,
		Sort:   input.Sort,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("status", input.Status).Str("sort", input.Sort).Msg("failed to list requests")
		return nil, err
	}

	return &ports.ListRequestsResult{
		Items:        items,
		StatusFilter: input.Status,
		SortTokens:   nextSortTokens(input.Sort),
	}, nil
}

// Update replaces the mutable fields of an existing request. The id in the
// body must match the id the caller addressed; a mismatch is reported as a
// lookup failure rather than a validation error, so a caller cannot probe
// for other records through the edit form.
func (s *RequestService) Update(ctx context.Context, input ports.UpdateRequestInput) (*domain.Request, error) {
	if input.PathID != input.ID {
		return nil, domain.ErrRequestNotFound
	}

	verr := validateRequestFields(input.Title, input.Description)
	if strings.TrimSpace(input.Status) == "" {
		verr.Add("status", "status is required")
	}
	if !verr.Empty() {
		return nil, verr
	}

	req := &domain.Request{
		ID:                  input.ID,
		Title:               input.Title,
		Description:         input.Description,
		Status:              input.Status,
		ResponsibleEmployee: input.ResponsibleEmployee,
	}

	if err := s.repo.Update(ctx, req); err != nil {
		if !errors.Is(err, domain.ErrRequestNotFound) {
			s.logger.Error().Err(err).Int("request_id", input.ID).Msg("failed to update request")
		}
		return nil, err
	}

	metrics.RequestsUpdatedTotal.Inc()
	s.logger.Info().Int("request_id", input.ID).Str("status", input.Status).Msg("request updated")

	// CreatedAt is owned by storage; read the record back for the response.
	return s.repo.FindByID(ctx, input.ID)
}

// Delete commits the destructive step of the delete flow. A missing record is
// a silent success: re-submitting a delete must not fail.
func (s *RequestService) Delete(ctx context.Context, id int) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrRequestNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Error().Err(err).Int("request_id", id).Msg("failed to delete request")
		return err
	}

	metrics.RequestsDeletedTotal.Inc()
	s.logger.Info().Int("request_id", id).Msg("request deleted")
	return nil
}

// validateRequestFields checks the constraints shared by create and update.
func validateRequestFields(title, description string) *domain.ValidationError {
	verr := domain.NewValidationError()
	if strings.TrimSpace(title) == "" {
		verr.Add("title", "title is required")
	} else if utf8.RuneCountInString(title) > domain.TitleMaxLen {
		verr.Add("title", fmt.Sprintf("title must be at most %d characters", domain.TitleMaxLen))
	}
	if strings.TrimSpace(description) == "" {
		verr.Add("description", "description is required")
	}
	return verr
}

// nextSortTokens computes the column-header toggles: a header applies its
// column's ascending sort unless that sort is already active, in which case
// it flips to descending.
func nextSortTokens(sort string) ports.SortTokens {
	tokens := ports.SortTokens{Date: ports.SortDateAsc, Status: ports.SortStatusAsc}
	if sort == ports.SortDateAsc {
		tokens.Date = ports.SortDateDesc
	}
	if sort == ports.SortStatusAsc {
		tokens.Status = ports.SortStatusDesc
	}
	return tokens
}
