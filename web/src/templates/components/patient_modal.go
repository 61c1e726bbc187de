package components

import (
	"encoding/json"
	"strconv"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/patients"
	"github.com/nfrund/ipadmin/internal/view/dto/manage"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

const (
	modalActionURL = "/app/services/patients/modal"
	modalSaveURL   = "/app/services/patients/save"
)

// Modal is the overlay every dialog is drawn in. Cancel buttons and the
// backdrop carry data-close-modal (see app.js).
func Modal(title string, body cmp.Node, footer cmp.Node) cmp.Node {
	return g.Div(
		g.Class("modal-backdrop"),
		cmp.Attr("data-close-modal", ""),
		g.Div(
			g.Class("modal-panel"),
			cmp.Attr("role", "dialog"),
			cmp.Attr("aria-modal", "true"),
			g.Div(
				g.Class("modal-header"),
				g.H2(g.Class("text-xl font-semibold text-blue-700"), cmp.Text(title)),
				g.Button(g.Type("button"), g.Class("modal-close"), cmp.Attr("data-close-modal", ""), cmp.Attr("aria-label", "Close"), cmp.Raw("&times;")),
			),
			g.Div(g.Class("modal-body"), body),
			cmp.If(footer != nil, g.Div(g.Class("modal-footer"), footer)),
		),
	)
}

// actionVals encodes the action posted by a dialog control.
func actionVals(kind string, index int) string {
	b, _ := json.Marshal(map[string]string{
		patients.FieldAction: kind,
		patients.FieldIndex:  strconv.Itoa(index),
	})
	return string(b)
}

// dialogAction makes a control re-post the whole dialog with an action.
func dialogAction(kind string, index int, trigger string) cmp.Node {
	nodes := cmp.Group{
		hx.Post(modalActionURL),
		hx.Target("#modal"),
		hx.Vals(actionVals(kind, index)),
	}
	if trigger != "" {
		nodes = append(nodes, hx.Trigger(trigger))
	}
	return nodes
}

// PatientModal is the add/edit patient dialog.
func PatientModal(data manage.ModalData) cmp.Node {
	f := data.Form
	body := cmp.El("form",
		g.ID("patient-form"),
		cmp.If(data.SaveError != "", Alert(AlertError, "", data.SaveError)),
		cmp.Attr("novalidate", ""),
		g.Input(g.Type("hidden"), g.Name("_csrf"), g.Value(data.CSRFToken)),
		g.Input(g.Type("hidden"), g.Name(patients.FieldID), g.Value(f.ID)),
		g.Input(g.Type("hidden"), g.Name(patients.FieldPatientID), g.Value(itoa(f.PatientID))),
		g.Input(g.Type("hidden"), g.Name(patients.FieldInviteSent), g.Value(strconv.FormatBool(f.InviteSent))),
		basicInfo(data),
		assignedMeasures(data),
	)
	footer := cmp.Group{
		g.Button(g.Type("button"), g.Class("btn btn-outline mr-3"), cmp.Attr("data-close-modal", ""), cmp.Text("Cancel")),
		g.Button(
			g.Type("button"),
			g.Class("btn btn-primary"),
			hx.Post(modalSaveURL),
			hx.Target("#modal"),
			hx.Include("#patient-form"),
			cmp.Attr("hx-disabled-elt", "this"),
			cmp.If(!f.CanSave(), g.Disabled()),
			cmp.Text("Save Changes"),
		),
	}
	return Modal(data.Title(), body, footer)
}

func basicInfo(data manage.ModalData) cmp.Node {
	f := data.Form
	return g.Div(
		g.Class("panel"),
		g.H3(g.Class("panel-title"), cmp.Text("Basic Information")),
		g.Div(
			g.Class("grid grid-cols-2 gap-4"),
			textField("First Name", patients.FieldFirstName, "text", f.FirstName, data.Problems),
			textField("Last Name", patients.FieldLastName, "text", f.LastName, data.Problems),
			textField("Email", patients.FieldEmailID, "email", f.EmailID, data.Problems),
			textField("Legacy Patient ID", patients.FieldLegacyPatientID, "text", f.LegacyPatientID, data.Problems),
		),
	)
}

func textField(label, name, typ, value string, problems *patients.ValidationError) cmp.Node {
	msg := problems.Message(name)
	cls := "input"
	if msg != "" {
		cls += " input-invalid"
	}
	return cmp.El("label",
		g.Class("form-control"),
		g.Span(g.Class("form-label"), cmp.Text(label)),
		g.Input(g.Type(typ), g.Name(name), g.Value(value), g.Class(cls)),
		cmp.If(msg != "", g.Span(g.Class("field-error"), cmp.Text(msg))),
	)
}

func assignedMeasures(data manage.ModalData) cmp.Node {
	f := data.Form
	rows := make(cmp.Group, 0, len(f.Assigned))
	for i, am := range f.Assigned {
		rows = append(rows, measureRow(data.Catalog, i, am))
	}
	return g.Div(
		g.Class("panel"),
		g.H3(g.Class("panel-title"), cmp.Text("Assigned Measures")),
		cmp.If(data.CatalogError != "", Alert(AlertError, "", data.CatalogError)),
		cmp.If(f.Error != "", Alert(AlertError, "", f.Error)),
		cmp.If(data.Problems.Message(patients.FieldAssigned) != "", Alert(AlertError, "", data.Problems.Message(patients.FieldAssigned))),
		g.Div(g.Class("space-y-4 mb-6"), rows),
		newMeasureRow(data),
	)
}

func measureRow(catalog domain.Catalog, i int, am domain.AssignedMeasure) cmp.Node {
	return g.Div(
		g.Class("measure-row grid grid-cols-2 gap-4"),
		g.Input(g.Type("hidden"), g.Name(patients.FieldRowID), g.Value(am.ID)),
		g.Input(g.Type("hidden"), g.Name(patients.FieldAssignedID), g.Value(itoa(am.MeasureID))),
		g.Input(g.Type("hidden"), g.Name(patients.FieldMeasureName), g.Value(am.MeasureName)),
		cmp.El("label",
			g.Class("form-control"),
			g.Span(g.Class("form-label"), cmp.Text("Measure")),
			g.Select(
				g.Name(patients.FieldMeasureID),
				g.Class("input"),
				dialogAction(patients.ActionChangeMeasure, i, "change"),
				measureOptions(catalog, am.MeasureID),
			),
		),
		cadenceControl("Frequency", patients.FieldFrequencyTimes, patients.FieldFrequencyUnit, am.MeasuringCadence,
			dialogAction(patients.ActionChangeCadence, i, "change")),
		g.Div(
			g.Class("col-span-2 flex justify-end"),
			g.Button(
				g.Type("button"),
				g.Class("btn btn-sm btn-ghost text-red-600"),
				dialogAction(patients.ActionRemoveMeasure, i, ""),
				cmp.Text("Delete"),
			),
		),
	)
}

func newMeasureRow(data manage.ModalData) cmp.Node {
	nm := data.Form.NewMeasure
	return g.Div(
		g.Class("measure-row new-measure grid grid-cols-2 gap-4"),
		g.H4(g.Class("col-span-2 font-semibold text-gray-700"), cmp.Text("Add New Measure")),
		g.Input(g.Type("hidden"), g.Name(patients.FieldNewAccepted), g.Value(itoa(nm.MeasureID))),
		cmp.El("label",
			g.Class("form-control"),
			g.Span(g.Class("form-label"), cmp.Text("Measure")),
			g.Select(
				g.Name(patients.FieldNewMeasureID),
				g.Class("input"),
				dialogAction(patients.ActionSelectNew, -1, "change"),
				measureOptions(data.Catalog, nm.MeasureID),
			),
		),
		cadenceControl("Frequency", patients.FieldNewFrequencyTimes, patients.FieldNewFrequencyUnit, nm.Cadence, nil),
		g.Div(
			g.Class("col-span-2 flex justify-end"),
			g.Button(
				g.Type("button"),
				g.Class("btn btn-primary"),
				dialogAction(patients.ActionAddMeasure, -1, ""),
				cmp.If(!data.Form.CanAddMeasure(), g.Disabled()),
				cmp.Text("+ Add Measure"),
			),
		),
	)
}

func measureOptions(catalog domain.Catalog, selected int) cmp.Node {
	opts := cmp.Group{g.Option(g.Value(""), cmp.Text("Select a measure"))}
	if len(catalog) == 0 {
		return append(opts, g.Option(g.Value(""), g.Disabled(), cmp.Text("No measures available")))
	}
	for _, m := range catalog {
		opts = append(opts, g.Option(
			g.Value(itoa(m.MeasureID)),
			cmp.If(m.MeasureID == selected, g.Selected()),
			cmp.Text(m.MeasureName),
		))
	}
	return opts
}

func cadenceControl(label, timesName, unitName string, c domain.MeasuringCadence, action cmp.Node) cmp.Node {
	return cmp.El("label",
		g.Class("form-control"),
		g.Span(g.Class("form-label"), cmp.Text(label)),
		g.Div(
			g.Class("flex gap-2"),
			g.Input(
				g.Type("number"),
				g.Name(timesName),
				g.Min("1"),
				g.Max("99"),
				g.Value(itoa(c.FrequencyTimes)),
				g.Class("input w-24"),
				action,
			),
			g.Select(
				g.Name(unitName),
				g.Class("input"),
				action,
				cmp.Map(domain.FrequencyUnits, func(u string) cmp.Node {
					return g.Option(g.Value(u), cmp.If(u == c.FrequencyUnit, g.Selected()), cmp.Text("per "+u))
				}),
			),
		),
	)
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
