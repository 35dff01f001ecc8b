package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/turtacn/DealLens/pkg/errors"
)

// ErrorResponse is the failure body of every JSON endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON writes data as JSON with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(data)
	}
}

// writeFailure writes {success:false, error:<message>}.
func writeFailure(w http.ResponseWriter, statusCode int, err error) {
	writeJSON(w, statusCode, ErrorResponse{Success: false, Error: errorMessage(err)})
}

// errorMessage strips the code prefix from application errors so clients see
// the plain message.
func errorMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		if appErr.Detail != "" {
			return appErr.Message + ": " + appErr.Detail
		}
		return appErr.Message
	}
	return err.Error()
}

//Personal.AI order the ending
