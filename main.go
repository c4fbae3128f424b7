package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"InkBoard/internal/config"
	"InkBoard/internal/logx"
	"InkBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", "inkboard.toml", "path to the TOML configuration file")
	debug := flag.Bool("debug", false, "log debug messages")
	printConfig := flag.Bool("print-config", false, "print the effective configuration and exit")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logx.SetLogger(logger)

	cfg, err := config.Load(*configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Info("no config file, using defaults", "path", *configPath)
	case err != nil:
		logger.Error("cannot load config", "err", err)
		os.Exit(1)
	}

	if *printConfig {
		if err := config.Write(os.Stdout, cfg); err != nil {
			logger.Error("cannot print config", "err", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("starting", "title", cfg.Window.Title)
	ui.RunApp(cfg)
}
