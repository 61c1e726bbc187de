package patients

import "github.com/nfrund/ipadmin/internal/domain"

// EmptyUpdateMessage is shown when an update returns no record.
const EmptyUpdateMessage = "No patient data returned from server."

// ReconcileUpdate picks the record to show after an update. The API may
// answer with the record or an array holding it; a response without a
// patient name keeps prev. An empty response is domain.ErrEmptyResponse.
func ReconcileUpdate(prev domain.Patient, response []domain.Patient) (domain.Patient, error) {
	if len(response) == 0 {
		return prev, domain.ErrEmptyResponse
	}
	if response[0].HasName() {
		return response[0], nil
	}
	return prev, nil
}
