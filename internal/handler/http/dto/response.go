package dto

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HealthResponse reports service and ledger health.
type HealthResponse struct {
	Status string `json:"status"`
	Ledger string `json:"ledger"`
}
