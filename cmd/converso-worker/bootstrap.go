package main

import (
	"log/slog"

	"converso/internal/bridge"
	"converso/internal/config"
	"converso/internal/deps"
	"converso/internal/download"
	"converso/internal/module"
	"converso/internal/services/ytdlp"
)

func registerHandlers(m *module.Module, b *bridge.Bridge, cfg *config.Config, logger *slog.Logger) {
	engine := ytdlp.NewCLI(ytdlp.WithBinary(cfg.Engine.Binary))

	ffmpeg := deps.CheckFFmpegForEngine(cfg.Engine.Binary, cfg.Engine.FFmpegBinary)
	ffmpegLocation := ""
	if cfg.Engine.FFmpegBinary != "" && cfg.Engine.FFmpegBinary != "ffmpeg" {
		ffmpegLocation = cfg.Engine.FFmpegBinary
	}

	settings := download.SettingsFromConfig(cfg, ffmpeg.Available, ffmpegLocation)
	orchestrator := download.NewOrchestrator(engine, b, settings, logger)
	orchestrator.RegisterHandlers(m)
}
