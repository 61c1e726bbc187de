// Package manage holds the view models of the patient management page.
package manage

import (
	"time"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/patients"
)

// PageData is the search box and result table.
type PageData struct {
	SearchTerm string
	Patients   []domain.Patient
	Error      string
	CSRFToken  string
}

// ModalData is the add/edit patient dialog.
type ModalData struct {
	Form         patients.Form
	Catalog      domain.Catalog
	CatalogError string
	Problems     *patients.ValidationError
	CSRFToken    string

	// SaveError is the API failure of the last save attempt.
	SaveError string
}

// Title is the dialog heading.
func (m ModalData) Title() string {
	if m.Form.IsEdit() {
		return "Edit Patient Details"
	}
	return "Add New Patient"
}

// QuickViewData is the read-only feedback dialog for one listed patient.
type QuickViewData struct {
	Patient  domain.Patient
	Data     *domain.PatientData
	Error    string
	Location *time.Location
}
