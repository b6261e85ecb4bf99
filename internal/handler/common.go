package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "bankist/internal/errors"
)

type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := Response{Data: data}
	json.NewEncoder(w).Encode(response)
}

func writeError(w http.ResponseWriter, appErr *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json")

	statusCode := appErr.HTTPStatus()
	errResponse := Error{
		Code:    string(appErr.Code),
		Message: appErr.Message,
		Details: appErr.Details,
	}

	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{Error: &errResponse})
}

// WriteError is writeError for callers outside the package, such as
// middleware.
func WriteError(w http.ResponseWriter, appErr *apperrors.AppError) {
	writeError(w, appErr)
}

func writeServiceError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeError(w, appErr)
		return
	}
	writeError(w, apperrors.NewAppError(apperrors.InternalError, "an unexpected error occurred").WithDetails(err.Error()))
}

// RawText accepts a JSON string or number and keeps it as text, the way
// form inputs deliver values. Parsing happens in the service layer.
type RawText string

func (t *RawText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = RawText(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = RawText(n.String())
	return nil
}

func decode(r *http.Request, dst interface{}) *apperrors.AppError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewAppError(apperrors.InvalidInput, "invalid request body").WithDetails(err.Error())
	}
	return nil
}
