package utils

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ANSI colors for console output
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// InitLogger configures the global zerolog logger. Development gets a colored
// console writer, everything else logs JSON to stdout.
func InitLogger(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if strings.EqualFold(env, "development") {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.Kitchen,
		})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func ColorText(text, color string) string {
	return color + text + Reset
}

func ColorStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return ColorText(fmt.Sprintf("%d", statusCode), Green)
	case statusCode >= 400 && statusCode < 500:
		return ColorText(fmt.Sprintf("%d", statusCode), Yellow)
	case statusCode >= 500:
		return ColorText(fmt.Sprintf("%d", statusCode), Red)
	default:
		return fmt.Sprintf("%d", statusCode)
	}
}

// PrintLogInfo logs one request outcome line. Username may be nil for
// unauthenticated requests.
func PrintLogInfo(username *string, statusCode int, functionName string) {
	user := "Unknown"
	if username != nil {
		user = *username
	}

	event := log.Info()
	switch {
	case statusCode >= http.StatusInternalServerError:
		event = log.Error()
	case statusCode >= http.StatusBadRequest:
		event = log.Warn()
	}

	event.
		Str("user", user).
		Int("status", statusCode).
		Str("handler", functionName).
		Msg("request")
}
