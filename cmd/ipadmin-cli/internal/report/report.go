// Package report prints API data as text tables or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/feedback"
)

const maxCell = 40

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Catalog prints one line per measure.
func Catalog(w io.Writer, catalog domain.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tITEMS")
	fmt.Fprintln(tw, "--\t----\t------\t-----")
	if len(catalog) == 0 {
		fmt.Fprintln(tw, "No measures found")
	}
	for _, m := range catalog {
		status := m.MeasureStatus
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", m.MeasureID, truncate(m.MeasureName, maxCell), status, len(m.MeasureItems))
	}
	return tw.Flush()
}

// Patient prints the patient header followed by one table per measure.
func Patient(w io.Writer, data *domain.PatientData) error {
	if data == nil {
		_, err := fmt.Fprintln(w, "Patient not found")
		return err
	}

	fmt.Fprintf(w, "Patient:   %s\n", data.PatientName.Full())
	fmt.Fprintf(w, "Legacy ID: %s\n", data.LegacyPatientID)
	if data.EmailID != "" {
		fmt.Fprintf(w, "Email:     %s\n", data.EmailID)
	}
	if len(data.MeasuresWithFeedback) == 0 {
		_, err := fmt.Fprintln(w, "\nNo measures assigned.")
		return err
	}

	for _, m := range data.MeasuresWithFeedback {
		if err := measure(w, m); err != nil {
			return err
		}
	}
	return nil
}

func measure(w io.Writer, m domain.MeasureFeedback) error {
	fmt.Fprintf(w, "\n%s (%s)\n", m.MeasureName, m.MeasuringCadence)
	if len(m.FeedbackRows) == 0 {
		_, err := fmt.Fprintln(w, "No feedback records available for this measure")
		return err
	}

	headers := feedback.ColumnHeaders(m.FeedbackRows)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range m.FeedbackRows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = truncate(feedback.CellText(row, h), maxCell)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
