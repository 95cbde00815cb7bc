package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simplecrm/crm-system/internal/core/domain"
	"github.com/simplecrm/crm-system/internal/core/ports"
)

type stubRequestService struct {
	createFn func(ctx context.Context, in ports.CreateRequestInput) (*domain.Request, error)
	getFn    func(ctx context.Context, id int) (*domain.Request, error)
	listFn   func(ctx context.Context, in ports.ListRequestsInput) (*ports.ListRequestsResult, error)
	updateFn func(ctx context.Context, in ports.UpdateRequestInput) (*domain.Request, error)
	deleteFn func(ctx context.Context, id int) error

	updateCalls int
}

func (s *stubRequestService) Create(ctx context.Context, in ports.CreateRequestInput) (*domain.Request, error) {
	return s.createFn(ctx, in)
}

func (s *stubRequestService) Get(ctx context.Context, id int) (*domain.Request, error) {
	return s.getFn(ctx, id)
}

func (s *stubRequestService) List(ctx context.Context, in ports.ListRequestsInput) (*ports.ListRequestsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubRequestService) Update(ctx context.Context, in ports.UpdateRequestInput) (*domain.Request, error) {
	s.updateCalls++
	return s.updateFn(ctx, in)
}

func (s *stubRequestService) Delete(ctx context.Context, id int) error {
	return s.deleteFn(ctx, id)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestRequestHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stub := &stubRequestService{
		createFn: func(ctx context.Context, in ports.CreateRequestInput) (*domain.Request, error) {
			if in.Title != "Broken printer" {
				t.Fatalf("unexpected title: %q", in.Title)
			}
			return &domain.Request{
				ID:          7,
				CreatedAt:   now,
				Title:       in.Title,
				Description: in.Description,
				Status:      domain.StatusNew,
			}, nil
		},
	}
	h := NewRequestHandler(stub)

	body := strings.NewReader(`{"title":"Broken printer","description":"3rd floor"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/requests", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp requestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 7 || resp.Status != domain.StatusNew {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRequestHandler_Create_MissingTitle(t *testing.T) {
	e := newTestEcho()
	stub := &stubRequestService{
		createFn: func(ctx context.Context, in ports.CreateRequestInput) (*domain.Request, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewRequestHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/requests", strings.NewReader(`{"description":"no title"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestRequestHandler_Get_NonNumericID(t *testing.T) {
	e := newTestEcho()
	h := NewRequestHandler(&stubRequestService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/requests/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := h.Get(c); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestRequestHandler_Get_Missing(t *testing.T) {
	e := newTestEcho()
	stub := &stubRequestService{
		getFn: func(ctx context.Context, id int) (*domain.Request, error) {
			return nil, domain.ErrRequestNotFound
		},
	}
	h := NewRequestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/requests/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.Get(c); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

// A body id that disagrees with the path id must read as a missing record
// even when the rest of the payload would also fail validation.
func TestRequestHandler_Update_IDMismatch(t *testing.T) {
	e := newTestEcho()
	stub := &stubRequestService{
		updateFn: func(ctx context.Context, in ports.UpdateRequestInput) (*domain.Request, error) {
			return nil, nil
		},
	}
	h := NewRequestHandler(stub)

	body := strings.NewReader(`{"id":2,"title":"","description":"","status":""}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/requests/1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.Update(c); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
	if stub.updateCalls != 0 {
		t.Fatalf("service should not have been called")
	}
}

func TestRequestHandler_Update_MissingStatus(t *testing.T) {
	e := newTestEcho()
	h := NewRequestHandler(&stubRequestService{})

	body := strings.NewReader(`{"id":1,"title":"t","description":"d"}`)
	req := httptest.NewRequest(http.MethodPut, "/v1/requests/1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestRequestHandler_Delete_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubRequestService{
		deleteFn: func(ctx context.Context, id int) error {
			if id != 4 {
				t.Fatalf("unexpected id: %d", id)
			}
			return nil
		},
	}
	h := NewRequestHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/v1/requests/4", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestRequestHandler_List_PassesFilterAndSort(t *testing.T) {
	e := newTestEcho()
	stub := &stubRequestService{
		listFn: func(ctx context.Context, in ports.ListRequestsInput) (*ports.ListRequestsResult, error) {
			if in.Status != domain.StatusNew || in.Sort != ports.SortDateAsc {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ListRequestsResult{
				Items:        []*domain.Request{{ID: 1, Title: "a", Status: domain.StatusNew}},
				StatusFilter: in.Status,
				SortTokens:   ports.SortTokens{Date: ports.SortDateDesc, Status: ports.SortStatusAsc},
			}, nil
		},
	}
	h := NewRequestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/requests?status="+domain.StatusNew+"&sort=date_asc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listRequestsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != 1 {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
	if resp.SortTokens.Date != ports.SortDateDesc || resp.SortTokens.Status != ports.SortStatusAsc {
		t.Fatalf("unexpected sort tokens: %+v", resp.SortTokens)
	}
	if resp.StatusFilter != domain.StatusNew {
		t.Fatalf("unexpected status filter: %q", resp.StatusFilter)
	}
}
