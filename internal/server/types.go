package server

// ListQuery holds the common query parameters for listing endpoints.
type ListQuery struct {
	CustomerID string `form:"customer_id"`
	Email      string `form:"email"`
	Limit      int64  `form:"limit"`
}

// ErrorResponse is the standard error response for malformed requests
// that never reach a facade.
type ErrorResponse struct {
	Error string `json:"error"`
}
