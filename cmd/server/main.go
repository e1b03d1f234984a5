package main

import (
	"github.com/knowledge-engine/nounkey/internal/api"
	"github.com/knowledge-engine/nounkey/internal/config"
	"github.com/knowledge-engine/nounkey/internal/key"
	"github.com/knowledge-engine/nounkey/internal/normalizer"
)

func main() {
	// 1. Config
	cfg := config.Load()

	// 2. Logging
	logger := cfg.Log.NewLogger()
	entry := logger.WithField("service", "nounkey-api")

	entry.WithField("strict_suffix", cfg.Parser.StrictSuffix).Info("Starting noun key service")

	// 3. Parser and normalizer
	parser := key.Parser{StrictSuffix: cfg.Parser.StrictSuffix}
	n := normalizer.New(cfg.Normalizer, parser, entry)

	// 4. API Server
	server := api.NewServer(n, cfg.Server, entry)
	if err := server.Start(); err != nil {
		entry.Fatal(err)
	}
}
