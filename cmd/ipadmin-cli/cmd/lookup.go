package cmd

import (
	"github.com/nfrund/ipadmin/cmd/ipadmin-cli/internal/report"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <legacyId>",
	Short: "Print a patient's measures and feedback rows",
	Long: `Fetch the feedback recorded for a legacy patient ID and print one table
per measure. Columns follow the order the API returns them in.

Examples:
  ipadmin-cli lookup L123
  ipadmin-cli lookup L123 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(); err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		data, err := client.FeedbackByLegacyID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return report.JSON(cmd.OutOrStdout(), data)
		}
		return report.Patient(cmd.OutOrStdout(), data)
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
