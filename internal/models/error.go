package models

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidationFailed   = "VALIDATION_FAILED"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeSessionNotFound    = "SESSION_NOT_FOUND"
	ErrCodeModelNotFound      = "MODEL_NOT_FOUND"
	ErrCodeCapabilityPending  = "AR_CAPABILITY_PENDING"
	ErrCodeARUnsupported      = "AR_UNSUPPORTED"
	ErrCodeInvalidSceneAction = "INVALID_SCENE_ACTION"
	ErrCodeBusy               = "CHAT_BUSY"
)
