package httpjson

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger converts unexpected handler failures into the generic 500
// envelope while recording the real error server-side. Handlers are the
// failure-isolation boundary: nothing internal leaks to the client.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger backed by the given zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// Internal logs err with the operation name and writes a 500 envelope
// whose message is the client-facing text only.
func (e *ErrorLogger) Internal(w http.ResponseWriter, r *http.Request, message string, err error) {
	e.log.Error("handler error",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.Error(err),
	)
	WriteError(w, http.StatusInternalServerError, message)
}
