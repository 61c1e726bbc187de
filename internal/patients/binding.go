package patients

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/ipadmin/internal/domain"
)

// Form field names posted by the dialog. Per-row fields repeat once per
// assigned measure, in row order.
const (
	FieldID              = "id"
	FieldPatientID       = "patientId"
	FieldLegacyPatientID = "legacyPatientId"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmailID         = "emailId"
	FieldInviteSent      = "inviteSent"

	FieldRowID          = "rowId"
	FieldAssignedID     = "assignedMeasureId"
	FieldMeasureID      = "measureId"
	FieldMeasureName    = "measureName"
	FieldFrequencyTimes = "frequencyTimes"
	FieldFrequencyUnit  = "frequencyUnit"

	FieldNewAccepted       = "newMeasureAccepted"
	FieldNewMeasureID      = "newMeasureId"
	FieldNewFrequencyTimes = "newFrequencyTimes"
	FieldNewFrequencyUnit  = "newFrequencyUnit"

	FieldAction = "action"
	FieldIndex  = "index"
)

// Parse rebuilds the dialog state from posted values. Row measures come from
// the accepted ID; the select's value is only read by the action that
// changed it.
func Parse(v url.Values) Form {
	f := Form{
		ID:              v.Get(FieldID),
		PatientID:       atoi(v.Get(FieldPatientID)),
		LegacyPatientID: v.Get(FieldLegacyPatientID),
		FirstName:       v.Get(FieldFirstName),
		LastName:        v.Get(FieldLastName),
		EmailID:         v.Get(FieldEmailID),
		InviteSent:      v.Get(FieldInviteSent) == "true",
		Assigned:        []domain.AssignedMeasure{},
	}

	selected := v[FieldMeasureID]
	accepted := v[FieldAssignedID]
	rows := len(selected)
	if len(accepted) > rows {
		rows = len(accepted)
	}
	for i := 0; i < rows; i++ {
		id := atoi(at(accepted, i))
		if id == 0 {
			id = atoi(at(selected, i))
		}
		f.Assigned = append(f.Assigned, domain.AssignedMeasure{
			ID:          at(v[FieldRowID], i),
			MeasureID:   id,
			MeasureName: at(v[FieldMeasureName], i),
			MeasuringCadence: domain.MeasuringCadence{
				FrequencyTimes: atoi(at(v[FieldFrequencyTimes], i)),
				FrequencyUnit:  at(v[FieldFrequencyUnit], i),
			},
		})
	}

	f.NewMeasure = ResetNewMeasure()
	f.NewMeasure.MeasureID = atoi(v.Get(FieldNewAccepted))
	if times := atoi(v.Get(FieldNewFrequencyTimes)); times > 0 {
		f.NewMeasure.Cadence.FrequencyTimes = times
	}
	if unit := v.Get(FieldNewFrequencyUnit); unit != "" {
		f.NewMeasure.Cadence.FrequencyUnit = unit
	}
	return f
}

// Action kinds posted by the dialog controls.
const (
	ActionSelectNew     = "select-new"
	ActionAddMeasure    = "add-measure"
	ActionChangeMeasure = "change-measure"
	ActionChangeCadence = "change-cadence"
	ActionRemoveMeasure = "remove-measure"
)

// Action is one change to the dialog.
type Action struct {
	Kind      string
	Index     int
	MeasureID int
}

// ParseAction reads the action that triggered a dialog post.
func ParseAction(v url.Values) Action {
	a := Action{Kind: v.Get(FieldAction), Index: -1}
	if idx := v.Get(FieldIndex); idx != "" {
		a.Index = atoi(idx)
	}
	switch a.Kind {
	case ActionSelectNew:
		a.MeasureID = atoi(v.Get(FieldNewMeasureID))
	case ActionChangeMeasure:
		a.MeasureID = atoi(at(v[FieldMeasureID], a.Index))
	}
	return a
}

// Apply runs a on the form. Unknown actions leave the form unchanged.
func (f *Form) Apply(catalog domain.Catalog, a Action) {
	switch a.Kind {
	case ActionSelectNew:
		f.SelectNewMeasure(catalog, a.MeasureID)
	case ActionAddMeasure:
		f.AddMeasure(catalog)
	case ActionChangeMeasure:
		f.ChangeMeasure(catalog, a.Index, a.MeasureID)
	case ActionChangeCadence:
		if f.validIndex(a.Index) {
			c := f.Assigned[a.Index].MeasuringCadence
			f.ChangeCadence(a.Index, c.FrequencyTimes, c.FrequencyUnit)
		}
	case ActionRemoveMeasure:
		f.RemoveMeasure(a.Index)
	}
}

// ValidationError maps form field names to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return fmt.Sprintf("invalid patient form: %s", strings.Join(keys, ", "))
}

// Message returns the message for field, if any.
func (e *ValidationError) Message(field string) string {
	if e == nil {
		return ""
	}
	return e.Fields[field]
}

var fieldLabels = map[string]string{
	"LegacyPatientID": "Legacy Patient ID",
	"FirstName":       "First Name",
	"LastName":        "Last Name",
	"EmailID":         "Email",
}

var fieldNames = map[string]string{
	"LegacyPatientID": FieldLegacyPatientID,
	"FirstName":       FieldFirstName,
	"LastName":        FieldLastName,
	"EmailID":         FieldEmailID,
}

// FieldAssigned keys the message for invalid assigned-measure rows.
const FieldAssigned = "assignedMeasures"

// Validator checks a Form before it is sent to the API.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a Validator using go-playground/validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate returns a *ValidationError when fields are missing or malformed.
func (v *Validator) Validate(f Form) error {
	f.LegacyPatientID = strings.TrimSpace(f.LegacyPatientID)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.EmailID = strings.TrimSpace(f.EmailID)

	err := v.validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate patient form: %w", err)
	}

	out := &ValidationError{Fields: map[string]string{}}
	for _, fe := range verrs {
		if strings.Contains(fe.Namespace(), "Assigned[") {
			out.Fields[FieldAssigned] = "Each assigned measure needs a measure and a cadence of 1 to 99 times per day, week or month"
			continue
		}
		name, ok := fieldNames[fe.Field()]
		if !ok {
			name = fe.Field()
		}
		out.Fields[name] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "max":
		return label + " is too long"
	default:
		return label + " is invalid"
	}
}

func at(vals []string, i int) string {
	if i < 0 || i >= len(vals) {
		return ""
	}
	return vals[i]
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
