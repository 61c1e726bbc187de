// Package patients holds the state of the add/edit patient dialog.
//
// The dialog is re-rendered by the server on every change: the browser posts
// the whole form, the handler rebuilds a Form with Parse, applies one action
// and renders the result. Errors from an action live in Form.Error and block
// saving until the next action clears them.
package patients

import (
	"strings"

	"github.com/nfrund/ipadmin/internal/domain"
)

// DuplicateMeasureMessage is shown when a measure is assigned twice.
const DuplicateMeasureMessage = "This measure is already assigned to the patient"

// SaveFailedMessage is shown in the dialog when the API rejects a save.
const SaveFailedMessage = "Failed to save changes. Please try again."

// NewMeasure is the "add measure" row at the bottom of the dialog.
type NewMeasure struct {
	MeasureID int
	Cadence   domain.MeasuringCadence
}

// ResetNewMeasure returns an empty add row with the default cadence.
func ResetNewMeasure() NewMeasure {
	return NewMeasure{Cadence: domain.DefaultCadence()}
}

// Form is the editable copy of a patient.
type Form struct {
	// ID and PatientID identify the record being edited. Both are empty
	// when adding a patient.
	ID              string
	PatientID       int
	LegacyPatientID string `validate:"required,max=64"`
	FirstName       string `validate:"required,max=100"`
	LastName        string `validate:"required,max=100"`
	EmailID         string `validate:"required,email"`
	InviteSent      bool

	Assigned   []domain.AssignedMeasure `validate:"dive"`
	NewMeasure NewMeasure               `validate:"-"`

	Error string `validate:"-"`
}

// EmptyForm is the dialog state for a new patient.
func EmptyForm() Form {
	return Form{
		Assigned:   []domain.AssignedMeasure{},
		NewMeasure: ResetNewMeasure(),
	}
}

// FormFromPatient copies p into a dialog state.
func FormFromPatient(p domain.Patient) Form {
	name := p.Name()
	assigned := make([]domain.AssignedMeasure, len(p.AssignedMeasures))
	copy(assigned, p.AssignedMeasures)
	return Form{
		ID:              p.ID,
		PatientID:       p.PatientID,
		LegacyPatientID: p.LegacyPatientID,
		FirstName:       name.FirstName,
		LastName:        name.LastName,
		EmailID:         p.EmailID,
		InviteSent:      p.InviteSent,
		Assigned:        assigned,
		NewMeasure:      ResetNewMeasure(),
	}
}

// IsEdit reports whether the form edits an existing patient.
func (f *Form) IsEdit() bool {
	return f.PatientID != 0
}

// IsDuplicate reports whether the measure named by measureID is already
// assigned at an index other than skip. Names are compared, not IDs, so two
// catalog entries sharing a name count as the same measure. Pass skip < 0 to
// check every row. Unknown measures are never duplicates.
func (f *Form) IsDuplicate(catalog domain.Catalog, measureID, skip int) bool {
	selected, ok := catalog.Find(measureID)
	if !ok {
		return false
	}
	for i, am := range f.Assigned {
		if i == skip {
			continue
		}
		existing, ok := catalog.Find(am.MeasureID)
		if ok && existing.MeasureName == selected.MeasureName {
			return true
		}
	}
	return false
}

// SelectNewMeasure picks the measure in the add row. A duplicate leaves the
// previous choice in place and sets the error.
func (f *Form) SelectNewMeasure(catalog domain.Catalog, measureID int) {
	f.Error = ""
	if f.IsDuplicate(catalog, measureID, -1) {
		f.Error = DuplicateMeasureMessage
		return
	}
	f.NewMeasure.MeasureID = measureID
}

// AddMeasure appends the add row to the assigned measures and resets it.
// Nothing happens when no measure is chosen or it is not in the catalog.
func (f *Form) AddMeasure(catalog domain.Catalog) {
	if f.NewMeasure.MeasureID == 0 {
		return
	}
	if f.IsDuplicate(catalog, f.NewMeasure.MeasureID, -1) {
		f.Error = DuplicateMeasureMessage
		return
	}
	m, ok := catalog.Find(f.NewMeasure.MeasureID)
	if !ok {
		return
	}

	f.Error = ""
	f.Assigned = append(f.Assigned, domain.AssignedMeasure{
		MeasureID:        m.MeasureID,
		MeasureName:      m.MeasureName,
		MeasuringCadence: f.NewMeasure.Cadence,
	})
	f.NewMeasure = ResetNewMeasure()
}

// ChangeMeasure swaps the measure of row index.
func (f *Form) ChangeMeasure(catalog domain.Catalog, index, measureID int) {
	f.Error = ""
	if !f.validIndex(index) {
		return
	}
	if f.IsDuplicate(catalog, measureID, index) {
		f.Error = DuplicateMeasureMessage
		return
	}
	m, ok := catalog.Find(measureID)
	if !ok {
		return
	}
	f.Assigned[index].MeasureID = m.MeasureID
	f.Assigned[index].MeasureName = m.MeasureName
}

// ChangeCadence updates the cadence of row index.
func (f *Form) ChangeCadence(index, times int, unit string) {
	f.Error = ""
	if !f.validIndex(index) {
		return
	}
	f.Assigned[index].MeasuringCadence = domain.MeasuringCadence{
		FrequencyTimes: times,
		FrequencyUnit:  unit,
	}
}

// RemoveMeasure drops row index.
func (f *Form) RemoveMeasure(index int) {
	if !f.validIndex(index) {
		return
	}
	f.Assigned = append(f.Assigned[:index:index], f.Assigned[index+1:]...)
}

// CanSave is false while an error is shown.
func (f *Form) CanSave() bool {
	return f.Error == ""
}

// CanAddMeasure is false until a measure is picked in the add row.
func (f *Form) CanAddMeasure() bool {
	return f.NewMeasure.MeasureID != 0
}

// Input formats the form as the API write payload.
func (f *Form) Input(createdBy string) domain.PatientInput {
	assigned := make([]domain.AssignedMeasure, 0, len(f.Assigned))
	for _, am := range f.Assigned {
		assigned = append(assigned, domain.AssignedMeasure{
			MeasureID:        am.MeasureID,
			MeasureName:      am.MeasureName,
			MeasuringCadence: am.MeasuringCadence,
		})
	}
	return domain.PatientInput{
		LegacyPatientID: strings.TrimSpace(f.LegacyPatientID),
		PatientName: domain.PatientName{
			FirstName: strings.TrimSpace(f.FirstName),
			LastName:  strings.TrimSpace(f.LastName),
		},
		EmailID:          strings.TrimSpace(f.EmailID),
		Status:           domain.PatientStatusActive,
		AssignedMeasures: assigned,
		CreatedBy:        createdBy,
	}
}

func (f *Form) validIndex(i int) bool {
	return i >= 0 && i < len(f.Assigned)
}
