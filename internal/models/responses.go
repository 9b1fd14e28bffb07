package models

// Error carries a machine-readable code alongside a human message.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope for all API responses.
type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

// PaginationMeta describes the page window of a list response.
type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// SuccessResponse is the generic success envelope.
type SuccessResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Message    *string         `json:"message,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
}

// RefreshResult reports the outcome of a dataset refresh.
type RefreshResult struct {
	RefreshID string `json:"refreshId"`
	Items     int    `json:"items"`
	Pages     int    `json:"pages"`
	FetchedAt string `json:"fetchedAt"`
}
