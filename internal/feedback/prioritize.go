package feedback

import "github.com/nfrund/ipadmin/internal/domain"

// Prioritize moves the selected measure to the front. It returns the first
// measure with selectedID, if any, and the measures with other IDs in their
// original order.
func Prioritize(measures []domain.MeasureFeedback, selectedID int) (*domain.MeasureFeedback, []domain.MeasureFeedback) {
	if selectedID == 0 {
		return nil, measures
	}

	var selected *domain.MeasureFeedback
	rest := make([]domain.MeasureFeedback, 0, len(measures))
	for i := range measures {
		if measures[i].MeasureID != selectedID {
			rest = append(rest, measures[i])
			continue
		}
		if selected == nil {
			m := measures[i]
			selected = &m
		}
	}
	if selected == nil {
		return nil, measures
	}
	return selected, rest
}
