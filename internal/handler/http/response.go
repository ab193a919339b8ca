package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/Jindonglee/resume-board/pkg/errors"
	"github.com/Jindonglee/resume-board/pkg/logger"
	pkgvalidator "github.com/Jindonglee/resume-board/pkg/validator"
)

// response is the success envelope for every endpoint.
type response struct {
	Data any `json:"data"`
}

// errorResponse is the failure envelope for every endpoint.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Data: data})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *pkgvalidator.ValidationError
	if errors.As(err, &validationErr) {
		writeErrorBody(w, http.StatusBadRequest, errorBody{
			Code:    "VALIDATION_FAILED",
			Message: validationErr.Error(),
			Fields:  validationErr.Fields(),
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logger.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
				slog.String("code", appErr.Code),
				slog.String("error", appErr.Error()),
			)
		}
		writeErrorBody(w, appErr.Status, errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		})
		return
	}

	logger.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
	)
	writeErrorBody(w, apperrors.HTTPStatus(err), errorBody{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	})
}

func writeErrorBody(w http.ResponseWriter, status int, body errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: body})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.InvalidInput("request body must be valid JSON")
	}
	return nil
}
