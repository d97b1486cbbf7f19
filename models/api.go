package models

// Error kinds carried in ErrorResponse.Kind besides the calculation failure kinds
const (
	KindBadRequest   = "bad_request"
	KindUnauthorized = "unauthorized"
	KindInternal     = "internal"
)

// ErrorResponse is the body of every failed API call. The shape matches what the
// original browser client reads: {ok:false, error}.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// NewErrorResponse creates an error body
func NewErrorResponse(kind, message string) ErrorResponse {
	return ErrorResponse{OK: false, Error: message, Kind: kind}
}
