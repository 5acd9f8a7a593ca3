package domain

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is returned by operations that only confirm success
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ValidationMessages maps validator tags to user-facing messages
var ValidationMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"max":      "exceeds maximum length",
	"min":      "is below minimum length",
	"gte":      "must be greater than or equal to the minimum value",
	"gt":       "must be greater than the minimum value",
	"lte":      "must be less than or equal to the maximum value",
	"uuid":     "must be a valid UUID",
	"url":      "must be a valid URL",
	"numeric":  "must be a numeric value",
	"len":      "must be exactly the specified length",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "failed validation: " + tag
}
