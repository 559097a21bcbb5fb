package model

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Messages []string `json:"messages,omitempty"`
}

const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeWrongCredentials = "WRONG_CREDENTIALS"
	ErrCodeDuplicateUser    = "DUPLICATE_USER"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeTokenInvalid     = "TOKEN_INVALID"
	ErrCodeTokenExpired     = "TOKEN_EXPIRED"
	ErrCodeUnavailable      = "STORAGE_UNAVAILABLE"
	ErrCodeCreationFailed   = "CREATION_FAILED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// Result is the JSON body of a boolean boundary operation.
type Result struct {
	OK       bool     `json:"ok"`
	Messages []string `json:"messages,omitempty"`
}
