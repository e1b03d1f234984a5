// Package cli implements the nounkey command line.
package cli

import (
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/knowledge-engine/nounkey/internal/config"
	"github.com/knowledge-engine/nounkey/internal/key"
	"github.com/knowledge-engine/nounkey/internal/normalizer"
)

var (
	keyColor   = color.New(color.FgGreen)
	indexColor = color.New(color.FgCyan)
)

// newNormalizer wires a normalizer for a single CLI invocation. Logging is
// quiet unless --verbose is set, since failures are already reported as the
// command error.
func newNormalizer(cmd *cobra.Command, strict bool) *normalizer.Normalizer {
	cfg := config.Load()

	logger := cfg.Log.NewLogger()
	logger.SetOutput(cmd.ErrOrStderr())
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.ErrorLevel)
	}

	parser := key.Parser{StrictSuffix: strict}
	return normalizer.New(cfg.Normalizer, parser, logger.WithField("service", "nounkey-cli"))
}
