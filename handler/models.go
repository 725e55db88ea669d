package handler

// AskResponse is returned for every request that passed validation, including ones
// whose prompt was rejected or whose upstream call failed.
type AskResponse struct {
	Response string `json:"response"`
}

// ErrorResponse carries the message for a 4xx or 5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the liveness check.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
