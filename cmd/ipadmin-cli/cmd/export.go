package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/nfrund/ipadmin/internal/export"
	"github.com/nfrund/ipadmin/internal/feedback"
	"github.com/nfrund/ipadmin/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOut   string
	exportDir   string
	exportStart string
	exportEnd   string
)

var exportCmd = &cobra.Command{
	Use:   "export <legacyId>",
	Short: "Write a patient's feedback to an Excel workbook",
	Long: `Export writes a workbook with a patient sheet and one sheet per measure.
--start and --end (YYYY-MM-DD) limit every measure to that date range.

Examples:
  ipadmin-cli export L123
  ipadmin-cli export L123 --out reports/l123.xlsx --start 2024-01-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		legacyID := args[0]
		client, err := newClient()
		if err != nil {
			return err
		}
		data, err := client.FeedbackByLegacyID(cmd.Context(), legacyID)
		if err != nil {
			return err
		}

		opts := export.Options{Ranges: map[int]feedback.DateRange{}, Location: time.Local}
		if r := feedback.ParseDateRange(exportStart, exportEnd); !r.IsZero() {
			for _, m := range data.MeasuresWithFeedback {
				opts.Ranges[m.MeasureID] = r
			}
		}

		var buf bytes.Buffer
		if err := export.Write(&buf, data, opts); err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = export.FileName(legacyID)
		}
		n, err := storage.NewDirStore(exportDir).Save(cmd.Context(), out, &buf)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, n)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "workbook path relative to --dir (default feedback-<legacyId>.xlsx)")
	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "directory the workbook is written under")
	exportCmd.Flags().StringVar(&exportStart, "start", "", "first day to include (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportEnd, "end", "", "last day to include (YYYY-MM-DD)")
	rootCmd.AddCommand(exportCmd)
}
