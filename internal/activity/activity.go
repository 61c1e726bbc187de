// Package activity records what staff did to patient records. Handlers
// publish events on the bus; a Feed subscriber keeps the most recent ones
// for the home page and the admin panel.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/pubsub"
)

// Kind says what happened to the patient.
type Kind string

const (
	KindPatientCreated Kind = "patient.created"
	KindPatientUpdated Kind = "patient.updated"
	KindPatientInvited Kind = "patient.invited"
)

// Event is one recorded change.
type Event struct {
	ID              string    `json:"id"`
	Kind            Kind      `json:"kind"`
	Actor           string    `json:"actor"`
	PatientID       int       `json:"patientId"`
	LegacyPatientID string    `json:"legacyPatientId"`
	PatientName     string    `json:"patientName"`
	At              time.Time `json:"at"`
}

// Summary is the one-line description shown in the feed.
func (e Event) Summary() string {
	who := e.PatientName
	if who == "" {
		who = "Patient " + e.LegacyPatientID
	}
	switch e.Kind {
	case KindPatientCreated:
		return fmt.Sprintf("%s added %s", e.Actor, who)
	case KindPatientUpdated:
		return fmt.Sprintf("%s updated %s", e.Actor, who)
	case KindPatientInvited:
		return fmt.Sprintf("%s invited %s", e.Actor, who)
	default:
		return fmt.Sprintf("%s changed %s", e.Actor, who)
	}
}

// PatientActivity is the topic every event is published on.
var PatientActivity = pubsub.NewEvent[Event]("patients.activity")

// Recorder publishes events. A nil Recorder drops them.
type Recorder struct {
	publisher pubsub.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewRecorder returns a Recorder publishing on p.
func NewRecorder(p pubsub.Publisher, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{publisher: p, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Record publishes kind for p. Publish failures are logged, never returned:
// the patient change has already happened upstream.
func (r *Recorder) Record(ctx context.Context, kind Kind, actor string, p domain.Patient) {
	if r == nil || r.publisher == nil {
		return
	}
	ev := Event{
		ID:              uuid.NewString(),
		Kind:            kind,
		Actor:           actor,
		PatientID:       p.PatientID,
		LegacyPatientID: p.LegacyPatientID,
		PatientName:     p.Name().Full(),
		At:              r.now(),
	}
	if err := pubsub.Publish(ctx, r.publisher, PatientActivity, actor, ev); err != nil {
		r.logger.ErrorContext(ctx, "Failed to publish activity", "kind", kind, "patient_id", p.PatientID, "error", err)
	}
}

// DefaultSize is the feed length used when none is configured.
const DefaultSize = 20

// Feed keeps the latest events in a ring buffer.
type Feed struct {
	mu     sync.RWMutex
	events []Event
	next   int
	full   bool
	logger *slog.Logger
}

// NewFeed returns a Feed holding up to size events.
func NewFeed(size int, logger *slog.Logger) *Feed {
	if size <= 0 {
		size = DefaultSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{events: make([]Event, size), logger: logger}
}

// Start subscribes the feed to the bus until ctx is canceled.
func (f *Feed) Start(ctx context.Context, sub pubsub.Subscriber) error {
	return sub.Subscribe(ctx, PatientActivity.Name(), f.handle)
}

func (f *Feed) handle(ctx context.Context, msg pubsub.Message) error {
	ev, err := pubsub.Decode(PatientActivity, msg)
	if err != nil {
		return err
	}
	f.Add(ev)
	f.logger.InfoContext(ctx, "Patient activity",
		"kind", ev.Kind,
		"actor", ev.Actor,
		"patient_id", ev.PatientID,
		"legacy_patient_id", ev.LegacyPatientID,
	)
	return nil
}

// Add stores ev, evicting the oldest event when full.
func (f *Feed) Add(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[f.next] = ev
	f.next = (f.next + 1) % len(f.events)
	if f.next == 0 {
		f.full = true
	}
}

// Recent returns the stored events, newest first.
func (f *Feed) Recent() []Event {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := f.next
	if f.full {
		n = len(f.events)
	}
	out := make([]Event, 0, n)
	for i := 1; i <= n; i++ {
		idx := (f.next - i + len(f.events)) % len(f.events)
		out = append(out, f.events[idx])
	}
	return out
}
