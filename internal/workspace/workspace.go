// Package workspace keeps the patient management search results of a
// browser session on the server, so they survive page navigation.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/statestore"
)

// TTL is how long an idle workspace is kept.
const TTL = 24 * time.Hour

// State is the search term and the patients currently listed.
type State struct {
	SearchTerm string           `json:"searchTerm"`
	Patients   []domain.Patient `json:"patients"`
}

// Upsert replaces the patient with the same record ID, or appends it.
func (s *State) Upsert(p domain.Patient) {
	for i := range s.Patients {
		if s.Patients[i].ID == p.ID {
			s.Patients[i] = p
			return
		}
	}
	s.Patients = append(s.Patients, p)
}

// Append adds a newly created patient to the list.
func (s *State) Append(p domain.Patient) {
	s.Patients = append(s.Patients, p)
}

// Find returns the listed patient with the given numeric ID.
func (s *State) Find(patientID int) (domain.Patient, bool) {
	for _, p := range s.Patients {
		if p.PatientID == patientID {
			return p, true
		}
	}
	return domain.Patient{}, false
}

// MarkInvited flags the patient as invited. It reports whether the patient
// is listed.
func (s *State) MarkInvited(patientID int) bool {
	for i := range s.Patients {
		if s.Patients[i].PatientID == patientID {
			s.Patients[i].InviteSent = true
			return true
		}
	}
	return false
}

// Visible returns the listed patients that have a name; the rest are
// malformed rows the table skips.
func (s *State) Visible() []domain.Patient {
	out := make([]domain.Patient, 0, len(s.Patients))
	for _, p := range s.Patients {
		if p.HasName() {
			out = append(out, p)
		}
	}
	return out
}

// Workspaces loads and saves State by workspace ID.
type Workspaces struct {
	store statestore.Store
}

// New returns a Workspaces backed by store.
func New(store statestore.Store) *Workspaces {
	return &Workspaces{store: store}
}

// NewID returns a fresh workspace ID for a session.
func NewID() string {
	return uuid.NewString()
}

func key(id string) string {
	return "workspace:" + id
}

// Load returns the saved state, or an empty one.
func (w *Workspaces) Load(ctx context.Context, id string) (State, error) {
	var st State
	if id == "" {
		return st, nil
	}
	err := w.store.Get(ctx, key(id), &st)
	if errors.Is(err, statestore.ErrNotFound) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load workspace: %w", err)
	}
	return st, nil
}

// Save stores st and renews its expiry.
func (w *Workspaces) Save(ctx context.Context, id string, st State) error {
	if err := w.store.Set(ctx, key(id), st, TTL); err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}
	return nil
}

// Clear drops the saved state.
func (w *Workspaces) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := w.store.Delete(ctx, key(id)); err != nil {
		return fmt.Errorf("clear workspace: %w", err)
	}
	return nil
}

// Update loads the state, applies fn and saves the result.
func (w *Workspaces) Update(ctx context.Context, id string, fn func(*State)) (State, error) {
	st, err := w.Load(ctx, id)
	if err != nil {
		return State{}, err
	}
	fn(&st)
	if err := w.Save(ctx, id, st); err != nil {
		return State{}, err
	}
	return st, nil
}

// CardView is the last state of one measure card on the details page.
type CardView struct {
	Mode       string   `json:"mode,omitempty"`
	Start      string   `json:"start,omitempty"`
	End        string   `json:"end,omitempty"`
	Columns    []string `json:"columns,omitempty"`
	ColumnsSet bool     `json:"columnsSet,omitempty"`
}

func cardsKey(id, legacyID string) string {
	return "cards:" + id + ":" + legacyID
}

// CardViews returns the saved card states of one patient by measure ID. A
// missing workspace has none.
func (w *Workspaces) CardViews(ctx context.Context, id, legacyID string) (map[int]CardView, error) {
	if id == "" {
		return nil, nil
	}
	var views map[int]CardView
	err := w.store.Get(ctx, cardsKey(id, legacyID), &views)
	if errors.Is(err, statestore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load card views: %w", err)
	}
	return views, nil
}

// SaveCardView stores the state of one card and renews the expiry of the
// patient's card states.
func (w *Workspaces) SaveCardView(ctx context.Context, id, legacyID string, measureID int, v CardView) error {
	if id == "" {
		return nil
	}
	views, err := w.CardViews(ctx, id, legacyID)
	if err != nil {
		return err
	}
	if views == nil {
		views = map[int]CardView{}
	}
	views[measureID] = v
	if err := w.store.Set(ctx, cardsKey(id, legacyID), views, TTL); err != nil {
		return fmt.Errorf("save card view: %w", err)
	}
	return nil
}
