package handler

import (
	"errors"
	"net/http"

	"github.com/ledgerhouse/minibank-server/internal/apierrors"
	"github.com/ledgerhouse/minibank-server/internal/logger"
)

type errorResponse struct {
	Error responseError `json:"error"`
}

type responseError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeError maps an error to its wire envelope. Anything outside the
// apierrors taxonomy is an internal error and never exposes its cause.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.NewInternal(err)
	}

	if apiErr.Code == apierrors.CodeInternal {
		log.Error("request failed", "error", err.Error())
	}

	writeJSON(w, apiErr.HTTPStatus, errorResponse{
		Error: responseError{
			Code:    string(apiErr.Code),
			Message: apiErr.Message,
			Fields:  apiErr.Fields,
		},
	})
}
