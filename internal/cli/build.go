package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/knowledge-engine/nounkey/internal/key"
)

// BuildCmd returns the build command
func BuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <key>",
		Short: "Prefix a base key with the ordinal for an index",
		Long: `Prefix a base key with the ordinal for a zero-based index.

Examples:
  nounkey build Thing --index 0     # 1st Thing
  nounkey build Thing --index 477   # 478th Thing`,
		Args: cobra.ExactArgs(1),
		RunE: runBuild,
	}

	cmd.Flags().Int("index", 0, "Zero-based index")
	cmd.Flags().Bool("verbose", false, "Log parser activity to stderr")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	index, _ := cmd.Flags().GetInt("index")

	built, err := newNormalizer(cmd, false).Build(args[0], index)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), keyColor.Sprint(built))
	return nil
}

// OrdinalCmd returns the ordinal command
func OrdinalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ordinal <n>",
		Short: "Render a 1-based rank as an ordinal (1st, 2nd, 3rd, 4th)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid rank %q: must be a positive integer", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), indexColor.Sprint(key.Ordinal(n)))
			return nil
		},
	}
}
