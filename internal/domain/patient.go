package domain

import "strings"

// PatientName is the nested name object used by every patient payload.
type PatientName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Full joins first and last name the way the management table shows it.
func (n PatientName) Full() string {
	return strings.TrimSpace(n.FirstName + " " + n.LastName)
}

// MeasuringCadence says how often a measure should be collected.
type MeasuringCadence struct {
	FrequencyTimes int    `json:"frequencyTimes" validate:"min=1,max=99"`
	FrequencyUnit  string `json:"frequencyUnit" validate:"oneof=day week month"`
}

// Frequency units accepted by the API.
const (
	UnitDay   = "day"
	UnitWeek  = "week"
	UnitMonth = "month"
)

// FrequencyUnits lists the units in the order offered to staff.
var FrequencyUnits = []string{UnitDay, UnitWeek, UnitMonth}

// DefaultCadence is the cadence pre-selected for a newly assigned measure.
func DefaultCadence() MeasuringCadence {
	return MeasuringCadence{FrequencyTimes: 1, FrequencyUnit: UnitDay}
}

// AssignedMeasure is a catalog measure prescribed to a patient.
type AssignedMeasure struct {
	ID               string           `json:"_id,omitempty"`
	MeasureID        int              `json:"measureId" validate:"required"`
	MeasureName      string           `json:"measureName"`
	MeasuringCadence MeasuringCadence `json:"measuringCadence"`
}

// Patient is a patient record as returned by the patients endpoints.
type Patient struct {
	ID               string            `json:"_id"`
	PatientID        int               `json:"patientId"`
	LegacyPatientID  string            `json:"legacyPatientId"`
	PatientName      *PatientName      `json:"patientName,omitempty"`
	EmailID          string            `json:"emailId"`
	AssignedMeasures []AssignedMeasure `json:"assignedMeasures"`
	CreatedBy        string            `json:"createdBy,omitempty"`
	CreatedAt        string            `json:"createdAt,omitempty"`
	UpdatedAt        string            `json:"updatedAt,omitempty"`
	Version          int               `json:"__v,omitempty"`
	InviteSent       bool              `json:"inviteSent,omitempty"`
}

// HasName reports whether the record carries a patient name object. Rows
// without one are treated as malformed and skipped by the views.
func (p *Patient) HasName() bool {
	return p != nil && p.PatientName != nil
}

// Name returns the patient name or the zero value when it is missing.
func (p *Patient) Name() PatientName {
	if p == nil || p.PatientName == nil {
		return PatientName{}
	}
	return *p.PatientName
}

// PatientStatusActive is the only status this front end writes.
const PatientStatusActive = "Active"

// PatientInput is the body sent when creating or updating a patient.
type PatientInput struct {
	LegacyPatientID  string            `json:"legacyPatientId"`
	PatientName      PatientName       `json:"patientName"`
	EmailID          string            `json:"emailId"`
	Status           string            `json:"status"`
	AssignedMeasures []AssignedMeasure `json:"assignedMeasures"`
	CreatedBy        string            `json:"createdBy"`
}
