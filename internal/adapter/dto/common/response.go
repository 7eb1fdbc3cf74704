package common

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SuccessResponse is the uniform acknowledgement envelope for operations
// that return no resource body
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewErrorResponse builds an error envelope
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

// NewSuccessResponse builds an acknowledgement envelope
func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}
