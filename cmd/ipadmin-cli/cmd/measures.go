package cmd

import (
	"github.com/nfrund/ipadmin/cmd/ipadmin-cli/internal/report"
	"github.com/spf13/cobra"
)

var measuresCmd = &cobra.Command{
	Use:   "measures",
	Short: "List the measure catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(); err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		catalog, err := client.ListMeasures(cmd.Context())
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return report.JSON(cmd.OutOrStdout(), catalog)
		}
		return report.Catalog(cmd.OutOrStdout(), catalog)
	},
}

func init() {
	rootCmd.AddCommand(measuresCmd)
}
