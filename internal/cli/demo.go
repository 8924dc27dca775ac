package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/masonry/pkg/board"
)

// demoCommand creates the demo command, which writes a random item set.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		count  int
		seed   uint64
		output string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write a random item set",
		Long: fmt.Sprintf(`Write a random item set.

Every item is %d wide and between %d and %d high. The file format follows the
output extension (.json or .toml); without -o the set is printed as JSON.`,
			board.DemoWidth, board.DemoMinHeight, board.DemoMaxHeight),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := board.Demo(count, seed)
			if output == "" {
				return board.WriteItems(items, os.Stdout, board.FormatJSON)
			}
			if err := board.WriteItemsFile(items, output); err != nil {
				return fmt.Errorf("write items %s: %w", output, err)
			}
			printSuccess("Wrote %d items", count)
			printFile(output)
			printNewline()
			printNextStep("Lay out", appName+" layout "+output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 20, "number of items")
	cmd.Flags().Uint64Var(&seed, "seed", uint64(42), "random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .toml)")

	return cmd
}
