package patients

import (
	"net/url"
	"testing"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = domain.Catalog{
	{MeasureID: 1, MeasureName: "GAD-7"},
	{MeasureID: 2, MeasureName: "PHQ-9"},
	{MeasureID: 3, MeasureName: "GAD-7"}, // same name, different ID
	{MeasureID: 4, MeasureName: "Sleep Diary"},
}

func formWith(ids ...int) Form {
	f := EmptyForm()
	for _, id := range ids {
		m, _ := testCatalog.Find(id)
		f.Assigned = append(f.Assigned, domain.AssignedMeasure{
			MeasureID:        id,
			MeasureName:      m.MeasureName,
			MeasuringCadence: domain.DefaultCadence(),
		})
	}
	return f
}

func TestFormFromPatient(t *testing.T) {
	p := domain.Patient{
		ID:              "abc",
		PatientID:       7,
		LegacyPatientID: "L7",
		PatientName:     &domain.PatientName{FirstName: "Ada", LastName: "Byron"},
		EmailID:         "ada@example.com",
		AssignedMeasures: []domain.AssignedMeasure{
			{MeasureID: 1, MeasureName: "GAD-7", MeasuringCadence: domain.MeasuringCadence{FrequencyTimes: 2, FrequencyUnit: "week"}},
		},
	}

	f := FormFromPatient(p)
	assert.True(t, f.IsEdit())
	assert.Equal(t, "Ada", f.FirstName)
	assert.Equal(t, domain.DefaultCadence(), f.NewMeasure.Cadence)

	f.Assigned[0].MeasureName = "changed"
	assert.Equal(t, "GAD-7", p.AssignedMeasures[0].MeasureName, "form edits a copy")

	empty := EmptyForm()
	assert.False(t, empty.IsEdit())
}

func TestIsDuplicate_ComparesByName(t *testing.T) {
	f := formWith(1, 2)

	assert.True(t, f.IsDuplicate(testCatalog, 1, -1))
	assert.True(t, f.IsDuplicate(testCatalog, 3, -1), "different ID with the same name")
	assert.False(t, f.IsDuplicate(testCatalog, 4, -1))
	assert.False(t, f.IsDuplicate(testCatalog, 1, 0), "the edited row itself is skipped")
	assert.False(t, f.IsDuplicate(testCatalog, 99, -1), "unknown measures are never duplicates")
}

func TestAddMeasure(t *testing.T) {
	t.Run("appends with catalog name and resets the add row", func(t *testing.T) {
		f := formWith(1)
		f.NewMeasure = NewMeasure{MeasureID: 2, Cadence: domain.MeasuringCadence{FrequencyTimes: 3, FrequencyUnit: "week"}}

		f.AddMeasure(testCatalog)

		require.Len(t, f.Assigned, 2)
		assert.Equal(t, "PHQ-9", f.Assigned[1].MeasureName)
		assert.Equal(t, 3, f.Assigned[1].MeasuringCadence.FrequencyTimes)
		assert.Equal(t, ResetNewMeasure(), f.NewMeasure)
		assert.True(t, f.CanSave())
	})

	t.Run("duplicate sets the error", func(t *testing.T) {
		f := formWith(1)
		f.NewMeasure.MeasureID = 3

		f.AddMeasure(testCatalog)

		assert.Len(t, f.Assigned, 1)
		assert.Equal(t, DuplicateMeasureMessage, f.Error)
		assert.False(t, f.CanSave())
	})

	t.Run("no selection or unknown measure is a no-op", func(t *testing.T) {
		f := formWith(1)
		f.AddMeasure(testCatalog)
		assert.Len(t, f.Assigned, 1)
		assert.False(t, f.CanAddMeasure())

		f.NewMeasure.MeasureID = 99
		f.AddMeasure(testCatalog)
		assert.Len(t, f.Assigned, 1)
		assert.Empty(t, f.Error)
	})
}

func TestSelectNewMeasure(t *testing.T) {
	f := formWith(1)
	f.NewMeasure.MeasureID = 4

	f.SelectNewMeasure(testCatalog, 1)
	assert.Equal(t, DuplicateMeasureMessage, f.Error)
	assert.Equal(t, 4, f.NewMeasure.MeasureID, "previous choice is kept")

	f.SelectNewMeasure(testCatalog, 2)
	assert.Empty(t, f.Error)
	assert.Equal(t, 2, f.NewMeasure.MeasureID)
}

func TestChangeMeasure(t *testing.T) {
	f := formWith(1, 2)

	f.ChangeMeasure(testCatalog, 1, 3)
	assert.Equal(t, DuplicateMeasureMessage, f.Error)
	assert.Equal(t, 2, f.Assigned[1].MeasureID)

	f.ChangeMeasure(testCatalog, 0, 3)
	assert.Empty(t, f.Error, "re-selecting the row's own measure name is allowed")
	assert.Equal(t, 3, f.Assigned[0].MeasureID)

	f.ChangeMeasure(testCatalog, 1, 4)
	assert.Equal(t, "Sleep Diary", f.Assigned[1].MeasureName)

	f.ChangeMeasure(testCatalog, 9, 4)
	assert.Empty(t, f.Error, "out of range rows are ignored")
}

func TestChangeCadenceAndRemove(t *testing.T) {
	f := formWith(1, 2, 4)
	f.Error = DuplicateMeasureMessage

	f.ChangeCadence(1, 5, "month")
	assert.Empty(t, f.Error, "any change clears the error")
	assert.Equal(t, domain.MeasuringCadence{FrequencyTimes: 5, FrequencyUnit: "month"}, f.Assigned[1].MeasuringCadence)

	f.RemoveMeasure(1)
	require.Len(t, f.Assigned, 2)
	assert.Equal(t, 1, f.Assigned[0].MeasureID)
	assert.Equal(t, 4, f.Assigned[1].MeasureID)

	f.RemoveMeasure(5)
	assert.Len(t, f.Assigned, 2)
}

func TestInput(t *testing.T) {
	f := formWith(2)
	f.Assigned[0].ID = "row-1"
	f.LegacyPatientID = " L1 "
	f.FirstName = "Ada"
	f.LastName = "Byron "
	f.EmailID = "ada@example.com"

	in := f.Input("RY")
	assert.Equal(t, "L1", in.LegacyPatientID)
	assert.Equal(t, domain.PatientName{FirstName: "Ada", LastName: "Byron"}, in.PatientName)
	assert.Equal(t, domain.PatientStatusActive, in.Status)
	assert.Equal(t, "RY", in.CreatedBy)
	require.Len(t, in.AssignedMeasures, 1)
	assert.Empty(t, in.AssignedMeasures[0].ID, "row IDs are not sent")
	assert.Equal(t, "PHQ-9", in.AssignedMeasures[0].MeasureName)
}

func TestReconcileUpdate(t *testing.T) {
	prev := domain.Patient{ID: "a", PatientName: &domain.PatientName{FirstName: "Old"}}
	named := domain.Patient{ID: "a", PatientName: &domain.PatientName{FirstName: "New"}}
	unnamed := domain.Patient{ID: "a"}

	got, err := ReconcileUpdate(prev, []domain.Patient{named})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name().FirstName)

	got, err = ReconcileUpdate(prev, []domain.Patient{unnamed})
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Name().FirstName, "falls back to the previous record")

	_, err = ReconcileUpdate(prev, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyResponse)
}

func TestParseAndApply(t *testing.T) {
	v := url.Values{
		FieldID:                {"abc"},
		FieldPatientID:         {"7"},
		FieldLegacyPatientID:   {"L7"},
		FieldFirstName:         {"Ada"},
		FieldLastName:          {"Byron"},
		FieldEmailID:           {"ada@example.com"},
		FieldRowID:             {"r1", "r2"},
		FieldAssignedID:        {"1", "2"},
		FieldMeasureID:         {"1", "3"},
		FieldMeasureName:       {"GAD-7", "PHQ-9"},
		FieldFrequencyTimes:    {"2", "x"},
		FieldFrequencyUnit:     {"week", "day"},
		FieldNewAccepted:       {"4"},
		FieldNewFrequencyTimes: {"3"},
		FieldAction:            {ActionChangeMeasure},
		FieldIndex:             {"1"},
	}

	f := Parse(v)
	assert.Equal(t, 7, f.PatientID)
	require.Len(t, f.Assigned, 2)
	assert.Equal(t, 2, f.Assigned[1].MeasureID, "rows keep the accepted measure")
	assert.Equal(t, 0, f.Assigned[1].MeasuringCadence.FrequencyTimes)
	assert.Equal(t, 4, f.NewMeasure.MeasureID)
	assert.Equal(t, domain.MeasuringCadence{FrequencyTimes: 3, FrequencyUnit: "day"}, f.NewMeasure.Cadence)

	a := ParseAction(v)
	assert.Equal(t, Action{Kind: ActionChangeMeasure, Index: 1, MeasureID: 3}, a)

	f.Apply(testCatalog, a)
	assert.Equal(t, DuplicateMeasureMessage, f.Error)
	assert.Equal(t, 2, f.Assigned[1].MeasureID)

	f.Apply(testCatalog, Action{Kind: ActionRemoveMeasure, Index: 0})
	assert.Len(t, f.Assigned, 1)

	f.Apply(testCatalog, Action{Kind: "bogus"})
	assert.Len(t, f.Assigned, 1)

	assert.Equal(t, -1, ParseAction(url.Values{}).Index)
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	f := formWith(1)
	f.LegacyPatientID = "L1"
	f.FirstName = "Ada"
	f.LastName = "Byron"
	f.EmailID = "ada@example.com"
	require.NoError(t, v.Validate(f))

	f.EmailID = "not-an-email"
	f.FirstName = "  "
	f.Assigned[0].MeasuringCadence.FrequencyTimes = 0

	err := v.Validate(f)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Enter a valid email address", verr.Message(FieldEmailID))
	assert.Equal(t, "First Name is required", verr.Message(FieldFirstName))
	assert.NotEmpty(t, verr.Message(FieldAssigned))
	assert.Empty(t, verr.Message(FieldLastName))
	assert.Contains(t, err.Error(), "emailId")
}
