package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
)

func decodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return common.NewValidationError("invalid request", map[string]string{"body": "request body is required"})
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewValidationError("invalid request", map[string]string{"body": "request body is required"})
		}
		return common.NewValidationError("invalid request", map[string]string{"body": "malformed json"})
	}
	return nil
}

// idFromPath extracts a UUID path segment counted from the end of the path,
// so /offers/{id}/approve uses position 2 and /users/{id} uses position 1.
func idFromPath(r *http.Request, fromEnd int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) < fromEnd {
		return "", common.NewValidationError("invalid request", map[string]string{"id": "id is required"})
	}
	raw := segments[len(segments)-fromEnd]
	parsed, err := common.ParseUUID(raw)
	if err != nil {
		return "", common.NewValidationError("invalid request", map[string]string{"id": "invalid uuid"})
	}
	return parsed, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
