package feedback

// ViewMode is how a measure's feedback is displayed.
type ViewMode string

const (
	ModeTable     ViewMode = "table"
	ModeLineChart ViewMode = "lineChart"
	ModeBarChart  ViewMode = "barChart"
)

// Modes lists the modes in toggle order.
var Modes = []ViewMode{ModeTable, ModeLineChart, ModeBarChart}

// ParseMode maps a query value to a mode, defaulting to the table.
func ParseMode(s string) ViewMode {
	switch ViewMode(s) {
	case ModeLineChart, ModeBarChart:
		return ViewMode(s)
	default:
		return ModeTable
	}
}

// Label is the toggle button caption.
func (m ViewMode) Label() string {
	switch m {
	case ModeLineChart:
		return "Line Chart"
	case ModeBarChart:
		return "Bar Chart"
	default:
		return "Table"
	}
}

// IsChart reports whether the mode draws a chart.
func (m ViewMode) IsChart() bool {
	return m == ModeLineChart || m == ModeBarChart
}
