package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/beacon/internal/badge"
	"github.com/xkilldash9x/beacon/internal/report"
)

// newBadgeCmd creates the `badge` command.
func newBadgeCmd() *cobra.Command {
	var (
		categoryID string
		output     string
	)

	badgeCmd := &cobra.Command{
		Use:   "badge <report.json>",
		Short: "Emit an SVG score badge for one category of a report.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			lhr, err := report.Normalize(raw)
			if err != nil {
				return err
			}

			svg, err := badge.ForReport(lhr, categoryID)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write([]byte(svg))
				return err
			}
			return os.WriteFile(output, []byte(svg), 0o644)
		},
	}

	badgeCmd.Flags().StringVar(&categoryID, "category", "", "category id to badge (default: first category)")
	badgeCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return badgeCmd
}

func init() {
	rootCmd.AddCommand(newBadgeCmd())
}
