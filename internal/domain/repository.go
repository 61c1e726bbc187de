package domain

import "context"

// The interfaces below are requirements OF the front end on the practice
// API. The HTTP client in internal/apiclient satisfies all of them; tests
// substitute fakes.

// Authenticator checks staff credentials.
type Authenticator interface {
	Login(ctx context.Context, userName, password string) error
}

// PatientRepository reads and writes patient records.
type PatientRepository interface {
	PatientsByLegacyID(ctx context.Context, legacyID string) ([]Patient, error)
	CreatePatient(ctx context.Context, in PatientInput) (*Patient, error)
	UpdatePatient(ctx context.Context, patientID int, in PatientInput) ([]Patient, error)
}

// FeedbackRepository reads recorded measure feedback.
type FeedbackRepository interface {
	FeedbackByLegacyID(ctx context.Context, legacyID string) (*PatientData, error)
}

// MeasureCatalog lists the measures that can be assigned.
type MeasureCatalog interface {
	ListMeasures(ctx context.Context) (Catalog, error)
}

// Inviter sends a patient their app invitation.
type Inviter interface {
	SendInvite(ctx context.Context, patientID int) error
}
