package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"campushire/internal/common"
)

var validate = validator.New()

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	if err := validate.Struct(dest); err != nil {
		fields := map[string]string{}
		var invalid validator.ValidationErrors
		if ok := asValidationErrors(err, &invalid); ok {
			for _, fieldErr := range invalid {
				fields[strings.ToLower(fieldErr.Field())] = "failed " + fieldErr.Tag() + " validation"
			}
		}
		return common.NewValidationError("invalid request", fields)
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	invalid, ok := err.(validator.ValidationErrors)
	if ok {
		*target = invalid
	}
	return ok
}

// idFromPath extracts a UUID path segment counting from the end:
// 1 for /opportunities/{id}, 2 for /applications/{id}/status.
func idFromPath(r *http.Request, fromEnd int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) < fromEnd {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "missing path id"})
	}
	raw := segments[len(segments)-fromEnd]
	parsed, err := common.ParseUUID(raw)
	if err != nil {
		return "", common.NewValidationError("invalid id", map[string]string{"id": "invalid uuid"})
	}
	return parsed, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
