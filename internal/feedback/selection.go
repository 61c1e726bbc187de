package feedback

// Selection is the set of series chosen for a chart. An unset selection
// means every value column.
type Selection struct {
	keys []string
	set  bool
}

// AllSeries is the unset selection.
func AllSeries() Selection {
	return Selection{}
}

// SelectSeries builds an explicit selection; an empty list selects nothing.
func SelectSeries(keys []string) Selection {
	return Selection{keys: append([]string{}, keys...), set: true}
}

// IsSet reports whether the selection was chosen explicitly.
func (s Selection) IsSet() bool {
	return s.set
}

// Resolve returns the selected keys present in valueKeys, in selection
// order. The unset selection follows column order.
func (s Selection) Resolve(valueKeys []string) []string {
	if !s.set {
		return append([]string{}, valueKeys...)
	}

	known := make(map[string]bool, len(valueKeys))
	for _, k := range valueKeys {
		known[k] = true
	}
	out := []string{}
	for _, k := range s.keys {
		if known[k] {
			out = append(out, k)
			known[k] = false
		}
	}
	return out
}

// Merge applies a submitted column form. Keys still checked keep their place
// and newly checked keys are appended in submitted order, so series colors
// follow the order columns were picked in.
func (s Selection) Merge(checked, valueKeys []string) Selection {
	want := make(map[string]bool, len(checked))
	for _, k := range checked {
		want[k] = true
	}
	out := []string{}
	for _, k := range s.Resolve(valueKeys) {
		if want[k] {
			out = append(out, k)
			want[k] = false
		}
	}
	for _, k := range checked {
		if want[k] {
			out = append(out, k)
			want[k] = false
		}
	}
	return SelectSeries(out)
}

// Contains reports whether key is selected.
func (s Selection) Contains(key string) bool {
	if !s.set {
		return true
	}
	for _, k := range s.keys {
		if k == key {
			return true
		}
	}
	return false
}
