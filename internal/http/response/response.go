package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
)

// ErrorCollector counts error responses; the metrics collector plugs in here.
type ErrorCollector interface {
	ObserveError(code string)
}

var errorCollector ErrorCollector

func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Error(w http.ResponseWriter, err error) {
	code := common.CodeInternal
	message := "internal error"
	var fields map[string]string
	var appErr *common.Error
	if errors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
		fields = appErr.Fields
	}
	if errorCollector != nil {
		errorCollector.ObserveError(string(code))
	}
	JSON(w, statusFor(code), errorBody{Error: string(code), Message: message, Fields: fields})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeConflict, common.CodeDuplicateApplication, common.CodeProtectedRecord, common.CodeOfferNotOpen:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
