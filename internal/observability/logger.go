package observability

import (
	"log"

	"go.uber.org/zap"
)

// NewLogger builds the process-wide logger. Development mode switches to
// console encoding with debug level.
func NewLogger(development bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return logger
}
