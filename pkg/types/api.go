package types

// TextRequest is the JSON body accepted by POST /generate-text.
type TextRequest struct {
	// Required prompt text.
	// example: What is the capital of Indonesia?
	Message string `json:"message" example:"What is the capital of Indonesia?"`
}

// ReplyResponse is returned by every generate route on success.
type ReplyResponse struct {
	// Extracted model reply, or the fallback text when the model returned nothing usable.
	// example: Jakarta is the capital of Indonesia.
	Reply string `json:"reply" example:"Jakarta is the capital of Indonesia."`
}

// ErrorResponse is the JSON error payload. Error is set only for internal failures.
type ErrorResponse struct {
	// Human readable summary.
	// example: An error occurred
	Message string `json:"message" example:"An error occurred"`
	// Failure description from the inference provider.
	// example: googleapi: Error 400: API key not valid
	Error string `json:"error,omitempty" example:"googleapi: Error 400: API key not valid"`
}

// ModelsResponse is returned by GET /models.
type ModelsResponse struct {
	// Model identifier configured for each modality.
	Models map[Modality]string `json:"models"`
}
