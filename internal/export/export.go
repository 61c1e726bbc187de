// Package export writes a patient's feedback to an Excel workbook.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/feedback"
	"github.com/xuri/excelize/v2"
)

// ContentType of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	patientSheet  = "Patient"
	maxSheetName  = 31
	invalidInName = `[]:*?/\`
)

// Options narrows what is exported. Ranges are keyed by measure ID; measures
// without an entry are exported whole.
type Options struct {
	Ranges   map[int]feedback.DateRange
	Location *time.Location
}

// FileName is the suggested download name for a patient's workbook.
func FileName(legacyID string) string {
	return "feedback-" + sanitize(legacyID) + ".xlsx"
}

// Workbook builds a workbook with a patient sheet followed by one sheet per
// measure. The caller closes the returned file.
func Workbook(data *domain.PatientData, opts Options) (*excelize.File, error) {
	if data == nil {
		return nil, domain.ErrEmptyResponse
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", patientSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename patient sheet: %w", err)
	}
	if err := writePatient(f, data); err != nil {
		f.Close()
		return nil, err
	}

	used := map[string]bool{patientSheet: true}
	for _, m := range data.MeasuresWithFeedback {
		name := sheetName(m, used)
		used[name] = true
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("add sheet %q: %w", name, err)
		}
		if err := writeMeasure(f, name, m, opts); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook and writes it to w.
func Write(w io.Writer, data *domain.PatientData, opts Options) error {
	f, err := Workbook(data, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writePatient(f *excelize.File, data *domain.PatientData) error {
	rows := [][2]any{
		{"Patient ID", data.PatientID},
		{"Legacy ID", data.LegacyPatientID},
		{"Full Name", data.PatientName.Full()},
		{"Email", data.EmailID},
		{"Measures", len(data.MeasuresWithFeedback)},
	}
	for i, r := range rows {
		if err := setRow(f, patientSheet, i+1, r[:]); err != nil {
			return err
		}
	}
	return nil
}

func writeMeasure(f *excelize.File, sheet string, m domain.MeasureFeedback, opts Options) error {
	cols := feedback.Discover(m.FeedbackRows)
	rows := m.FeedbackRows
	if r, ok := opts.Ranges[m.MeasureID]; ok {
		rows = feedback.Filter(rows, cols.DateKey, r, opts.Location)
	}

	header := make([]any, len(cols.Headers))
	for i, h := range cols.Headers {
		header[i] = h
	}
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}

	for ri, row := range rows {
		values := make([]any, len(cols.Headers))
		for ci, h := range cols.Headers {
			values[ci] = cellValue(row, h, opts.Location)
		}
		if err := setRow(f, sheet, ri+2, values); err != nil {
			return err
		}
	}
	return nil
}

// cellValue keeps numbers numeric and turns date columns into times, so the
// spreadsheet can sort and chart them.
func cellValue(row domain.FeedbackRow, header string, loc *time.Location) any {
	v, ok := row.Get(header)
	if !ok || v == nil {
		return nil
	}
	if feedback.IsDateColumn(header) {
		if ts, ok := feedback.ParseTime(v, loc); ok {
			return ts.In(loc)
		}
	}
	switch v.(type) {
	case float64, bool:
		return v
	}
	return feedback.ValueText(v)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// sheetName is "<id> <name>", cut to the sheet name limit in characters
// and made unique with a " (n)" suffix.
func sheetName(m domain.MeasureFeedback, used map[string]bool) string {
	base := truncate(sanitize(strconv.Itoa(m.MeasureID)+" "+m.MeasureName), maxSheetName)
	name := base
	for i := 2; used[name]; i++ {
		suffix := " (" + strconv.Itoa(i) + ")"
		name = truncate(base, maxSheetName-utf8.RuneCountInString(suffix)) + suffix
	}
	return name
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidInName, r) || r < ' ' {
			return '_'
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
