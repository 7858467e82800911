package log

import (
	"os"

	"go.uber.org/zap"
)

var Logger *zap.Logger

// EnsureLogger builds the process-wide logger. APP_ENV=production selects
// the JSON encoder, anything else the development console encoder.
func EnsureLogger() {
	if Logger != nil {
		return
	}

	var err error
	if os.Getenv("APP_ENV") == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		Logger = zap.NewNop()
	}
}
