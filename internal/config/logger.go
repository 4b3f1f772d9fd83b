package config

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates a structured logger writing to w. The level is read
// from INVASION_LOG_LEVEL and defaults to info.
func NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	})
	if name := GetEnv("INVASION_LOG_LEVEL", ""); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return logger, fmt.Errorf("INVASION_LOG_LEVEL: %w", err)
		}
		logger.SetLevel(level)
	}
	return logger, nil
}
