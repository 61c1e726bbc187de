package domain

// Scale describes the answer range of a measure item.
type Scale struct {
	LowValue      float64 `json:"lowValue"`
	LowValueText  string  `json:"lowValueText"`
	HighValue     float64 `json:"highValue"`
	HighValueText string  `json:"highValueText"`
	Interval      float64 `json:"interval"`
}

// MeasureItem is a single question of a measure.
type MeasureItem struct {
	ID                string `json:"_id,omitempty"`
	MeasureItemID     int    `json:"measureItemId"`
	MeasureItemName   string `json:"measureItemName"`
	MeasureItemStatus string `json:"measureItemStatus"`
	Scale             Scale  `json:"scale"`
}

// Measure is an entry of the measure catalog.
type Measure struct {
	ID            string        `json:"_id,omitempty"`
	MeasureID     int           `json:"measureId"`
	MeasureName   string        `json:"measureName"`
	MeasureItems  []MeasureItem `json:"measureItems"`
	MeasureStatus string        `json:"measureStatus"`
	CreatedBy     string        `json:"createdBy,omitempty"`
	CreatedAt     string        `json:"createdAt,omitempty"`
	UpdatedAt     string        `json:"updatedAt,omitempty"`
}

// Catalog is the list of measures that can be assigned to a patient.
type Catalog []Measure

// Find looks up a measure by its numeric ID.
func (c Catalog) Find(measureID int) (Measure, bool) {
	for _, m := range c {
		if m.MeasureID == measureID {
			return m, true
		}
	}
	return Measure{}, false
}
