package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"rentdesk/internal/apperrors"
	"rentdesk/internal/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError renders an error as JSON. AppErrors carry their own status and
// code; anything else is a 500 with the detail kept out of the response.
func writeError(w http.ResponseWriter, err error) {
	var ae *apperrors.AppError
	if !errors.As(err, &ae) {
		logger.Error("unhandled error reached the API layer", "error", err)
		ae = apperrors.Internal(err)
	}
	writeJSON(w, ae.HTTPStatus, map[string]any{"error": ae})
}

// decodeAndValidate unmarshals the request body into dst and runs the
// declared validation tags.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]any, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			return apperrors.Validation("request validation failed").WithDetails(fields)
		}
		return apperrors.Validation(err.Error())
	}
	return nil
}
