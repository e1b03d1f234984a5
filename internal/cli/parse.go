package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knowledge-engine/nounkey/internal/config"
	"github.com/knowledge-engine/nounkey/internal/key"
)

// ParseCmd returns the parse command
func ParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <key>",
		Short: "Split a key into its base key and zero-based index",
		Long: `Split a noun store key into its base key and zero-based index.

A leading ordinal ("2nd Thing") sets the index to the ordinal minus one.
When --index is also given it must agree with the ordinal.

Examples:
  nounkey parse "478th Thing"              # Thing, 477
  nounkey parse Thing --index 49           # Thing, 49
  nounkey parse "1st Thing" --index 1      # error: they do not match
  nounkey parse "1th Thing" --strict       # 1th Thing, 0`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}

	cmd.Flags().Int("index", 0, "Explicit zero-based index")
	cmd.Flags().Bool("strict", config.Load().Parser.StrictSuffix, "Require the ordinal suffix to match its number")
	cmd.Flags().Bool("verbose", false, "Log parser activity to stderr")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")

	var index *int
	if cmd.Flags().Changed("index") {
		i, _ := cmd.Flags().GetInt("index")
		index = key.Index(i)
	}

	res := newNormalizer(cmd, strict).Normalize(args[0], index)
	if res.Err != nil {
		return res.Err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "key:   %s\n", keyColor.Sprint(res.Key))
	fmt.Fprintf(out, "index: %s\n", indexColor.Sprint(res.Index))
	return nil
}
