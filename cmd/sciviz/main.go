// Package main is the entry point for the sciviz viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/sciviz/internal/config"
	"github.com/Faultbox/sciviz/internal/engine/shader"
	"github.com/Faultbox/sciviz/internal/logger"
	"github.com/Faultbox/sciviz/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== sciviz ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		logger.Sync()
		os.Exit(shader.ExitCode(err))
	}
	defer v.Close()

	if cfg.Export.Path != "" {
		if err := v.Export(cfg.Export.Path); err != nil {
			logger.Error("export failed", zap.Error(err))
		} else {
			logger.Info("scene exported", zap.String("path", cfg.Export.Path))
		}
	}

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		v.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
