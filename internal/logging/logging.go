package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

func New(cfg *config.Logging) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	logLevel := logrus.InfoLevel
	if cfg.Development {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: cfg.Development})

	if cfg.File == "" {
		return log, nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create log file hook: %w", err)
	}
	log.AddHook(hook)

	return log, nil
}
