package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"campushire/internal/common"
)

type ErrorCollector interface {
	IncError(code string)
}

var (
	errorCollector ErrorCollector
	logger         *zap.Logger
	exposeDetail   bool
)

// SetErrorCollector wires the metrics collector error counters.
func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

// SetLogger wires the logger used for internal error reporting.
func SetLogger(l *zap.Logger) {
	logger = l
}

// SetExposeDetail controls whether internal error detail leaks to clients.
// Only enabled in development configurations.
func SetExposeDetail(expose bool) {
	exposeDetail = expose
}

type errorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Detail  string            `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// Error serializes a coded error. Deliberate codes pass their message
// through verbatim; internal errors are logged in full and masked with a
// generic message unless detail exposure is enabled.
func Error(w http.ResponseWriter, err error) {
	code := common.CodeOf(err)
	if errorCollector != nil {
		errorCollector.IncError(string(code))
	}

	body := errorBody{Message: "something went wrong"}
	var coded *common.Error
	if errors.As(err, &coded) {
		body.Message = coded.Message
		body.Fields = coded.Fields
	}
	if code == common.CodeInternal {
		if logger != nil {
			logger.Error("internal error", zap.Error(err))
		}
		if exposeDetail {
			body.Detail = err.Error()
		} else {
			body.Message = "something went wrong"
			body.Fields = nil
		}
	}
	JSON(w, statusFor(code), body)
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation, common.CodeInvalidState, common.CodeIneligible:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
