package lookup

import (
	"time"

	"github.com/nfrund/ipadmin/internal/domain"
)

// PageData is the view model for the patient lookup page. Patient is nil
// until a lookup succeeds.
type PageData struct {
	LegacyID  string
	Error     string
	Patient   *domain.PatientData
	Location  *time.Location
	CSRFToken string
}
