// Package response provides JSON response writers matching the public API's
// envelope shapes. Success bodies are written as-is; error bodies use either
// a {"message": ...} or {"error": ...} object depending on the endpoint, so
// both writers exist side by side.
package response

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
)

type messageBody struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code using json/v2.
// The payload is written exactly as given, with no wrapping envelope.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	// json/v2 MarshalWrite doesn't add a newline, but that's fine for HTTP responses.
	if err := json.MarshalWrite(w, data); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Message writes a {"message": ...} body with the given status code.
func Message(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	JSON(w, status, messageBody{Message: message}, logger)
}

// Error writes an {"error": ...} body with the given status code.
func Error(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	JSON(w, status, errorBody{Error: message}, logger)
}

// InternalError writes the generic 500 body and logs the underlying error.
// This is the terminal handler for anything a route didn't map itself.
func InternalError(w http.ResponseWriter, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	Error(w, http.StatusInternalServerError, "An unknown error occurred", logger)
}
