package dto

// ListQueryParams are the shared query parameters of every list endpoint.
// Search is a case-insensitive substring match on display fields; Status
// filters by exact status value, empty meaning "all".
type ListQueryParams struct {
	Search string `form:"search"`
	Status string `form:"status"`
}

// UpdateStatusRequest carries a status-transition request.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
