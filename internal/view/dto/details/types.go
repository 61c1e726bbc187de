// Package details holds the view models of the patient details page.
package details

import (
	"net/url"
	"strconv"
	"time"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/feedback"
)

// Messages shown on the details page.
const (
	NoPatientIDMessage   = "No patient ID provided"
	NoRecordsMessage     = "No feedback records available for this measure"
	EmptyRangeMessage    = "No data in the selected date range."
	NoColumnsMessage     = "Please select at least one column to display."
	NoMeasuresMessage    = "No measures assigned to this patient"
	PatientNotFoundTitle = "No Patient Found"
	NoDataMessage        = "No data received from the server"
)

// BackURL returns to the management page with its results kept.
const BackURL = "/app/services?preserve=1"

// PageData is the whole details page.
type PageData struct {
	LegacyID  string
	Error     string
	Patient   *domain.PatientData
	Priority  *MeasureCard
	Cards     []MeasureCard
	CSRFToken string
}

// SelectedMeasureID is the prioritized measure, or 0.
func (p PageData) SelectedMeasureID() int {
	if p.Priority == nil {
		return 0
	}
	return p.Priority.MeasureID
}

// CardQuery is the per-card state carried in the fragment URL. Its fields
// match workspace.CardView, which keeps it between requests.
type CardQuery struct {
	Mode    string
	Start   string
	End     string
	Columns []string
	// ColumnsSet is true once the column filter has been submitted, so an
	// empty Columns means "nothing selected" rather than "all".
	ColumnsSet bool
}

// Query parameter names of a card fragment.
const (
	ParamMode   = "mode"
	ParamStart  = "start"
	ParamEnd    = "end"
	ParamColumn = "col"
	ParamColSet = "colset"
)

// ParseCardQuery reads a card's state from query values.
func ParseCardQuery(v url.Values) CardQuery {
	return CardQuery{
		Mode:       v.Get(ParamMode),
		Start:      v.Get(ParamStart),
		End:        v.Get(ParamEnd),
		Columns:    v[ParamColumn],
		ColumnsSet: v.Get(ParamColSet) != "",
	}
}

// After resolves q against the card's previous state. A submitted column
// selection keeps the columns already picked in their order and appends the
// newly checked ones.
func (q CardQuery) After(prev CardQuery, valueKeys []string) CardQuery {
	if !q.ColumnsSet {
		return q
	}
	base := feedback.AllSeries()
	if prev.ColumnsSet {
		base = feedback.SelectSeries(prev.Columns)
	}
	q.Columns = base.Merge(q.Columns, valueKeys).Resolve(valueKeys)
	return q
}

// Views are the saved card states of a patient by measure ID.
type Views map[int]CardQuery

// MeasureCard is one measure section with its current view state.
type MeasureCard struct {
	LegacyID    string
	MeasureID   int
	MeasureName string
	Cadence     string
	Priority    bool

	Mode      feedback.ViewMode
	Range     feedback.DateRange
	Columns   feedback.Columns
	Selection feedback.Selection

	TotalRows int
	Rows      []domain.FeedbackRow
	Selected  []string
	Chart     feedback.Chart
	Summaries []feedback.Summary
	Location  *time.Location
}

// BuildMeasureCard applies the card state to a measure's feedback.
func BuildMeasureCard(legacyID string, m domain.MeasureFeedback, q CardQuery, loc *time.Location) MeasureCard {
	if loc == nil {
		loc = time.Local
	}
	card := MeasureCard{
		LegacyID:    legacyID,
		MeasureID:   m.MeasureID,
		MeasureName: m.MeasureName,
		Cadence:     m.MeasuringCadence,
		Mode:        feedback.ParseMode(q.Mode),
		Range:       feedback.ParseDateRange(q.Start, q.End),
		Columns:     feedback.Discover(m.FeedbackRows),
		Selection:   feedback.AllSeries(),
		TotalRows:   len(m.FeedbackRows),
		Location:    loc,
	}
	if q.ColumnsSet {
		card.Selection = feedback.SelectSeries(q.Columns)
	}

	card.Rows = feedback.Filter(m.FeedbackRows, card.Columns.DateKey, card.Range, loc)
	card.Selected = card.Selection.Resolve(card.Columns.ValueKeys)
	if card.Mode.IsChart() && len(card.Rows) > 0 && len(card.Selected) > 0 {
		card.Chart = feedback.BuildChart(card.Rows, card.Columns.DateKey, card.Selected)
		card.Summaries = feedback.Summaries(card.Chart)
	}
	return card
}

// Empty is the message replacing the table or chart, if any.
func (c MeasureCard) Empty() string {
	switch {
	case c.TotalRows == 0:
		return NoRecordsMessage
	case len(c.Rows) == 0:
		return EmptyRangeMessage
	case c.Mode.IsChart() && len(c.Selected) == 0:
		return NoColumnsMessage
	default:
		return ""
	}
}

// SelectedLabel is the column filter caption, e.g. "2 columns selected".
func (c MeasureCard) SelectedLabel() string {
	n := len(c.Selected)
	if n == 1 {
		return "1 column selected"
	}
	return strconv.Itoa(n) + " columns selected"
}

// ElementID is the DOM id the card fragment swaps into.
func (c MeasureCard) ElementID() string {
	return "measure-" + strconv.Itoa(c.MeasureID)
}

// URL is the fragment URL for the card in mode, keeping the current filters.
func (c MeasureCard) URL(mode feedback.ViewMode) string {
	v := url.Values{}
	v.Set(ParamMode, string(mode))
	if c.Range.StartRaw != "" {
		v.Set(ParamStart, c.Range.StartRaw)
	}
	if c.Range.EndRaw != "" {
		v.Set(ParamEnd, c.Range.EndRaw)
	}
	if c.Selection.IsSet() {
		v.Set(ParamColSet, "1")
		v[ParamColumn] = c.Selected
	}
	if c.Priority {
		v.Set("priority", "1")
	}
	return c.BaseURL() + "?" + v.Encode()
}

// BaseURL is the fragment path without query.
func (c MeasureCard) BaseURL() string {
	return "/app/patients/" + url.PathEscape(c.LegacyID) + "/measures/" + strconv.Itoa(c.MeasureID)
}

// BuildPage lays out every measure of data, with selectedID first when it
// names one of them. Each card starts from its saved view, if any.
func BuildPage(legacyID string, data *domain.PatientData, selectedID int, views Views, loc *time.Location) PageData {
	page := PageData{LegacyID: legacyID, Patient: data}
	if data == nil {
		return page
	}
	selected, rest := feedback.Prioritize(data.MeasuresWithFeedback, selectedID)
	if selected != nil {
		card := BuildMeasureCard(legacyID, *selected, views[selected.MeasureID], loc)
		card.Priority = true
		page.Priority = &card
	}
	for _, m := range rest {
		page.Cards = append(page.Cards, BuildMeasureCard(legacyID, m, views[m.MeasureID], loc))
	}
	return page
}
