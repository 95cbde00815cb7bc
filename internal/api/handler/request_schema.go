package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// --- Request / Response types ---

type createRequestRequest struct {
	Title               string `json:"title"                          validate:"required,max=255"`
	Description         string `json:"description"                    validate:"required"`
	ResponsibleEmployee string `json:"responsible_employee,omitempty"`
}

type updateRequestRequest struct {
	ID                  int    `json:"id"                             validate:"required"`
	Title               string `json:"title"                          validate:"required,max=255"`
	Description         string `json:"description"                    validate:"required"`
	Status              string `json:"status"                         validate:"required"`
	ResponsibleEmployee string `json:"responsible_employee,omitempty"`
}

// requestResponse is the transport view of a request. It is intentionally
// separate from the domain type so the JSON contract is not coupled to
// internal changes.
type requestResponse struct {
	ID                  int       `json:"id"`
	CreatedAt           time.Time `json:"created_at"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Status              string    `json:"status"`
	ResponsibleEmployee string    `json:"responsible_employee,omitempty"`
}

// sortTokensResponse carries the toggle values for the sortable column
// headers of the listing view.
type sortTokensResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type listRequestsResponse struct {
	Data         []requestResponse  `json:"data"`
	StatusFilter string             `json:"status_filter,omitempty"`
	SortTokens   sortTokensResponse `json:"sort_tokens"`
}
