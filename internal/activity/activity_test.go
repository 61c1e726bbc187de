package activity

import (
	"context"
	"testing"
	"time"

	"github.com/nfrund/ipadmin/internal/domain"
	"github.com/nfrund/ipadmin/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_RingBuffer(t *testing.T) {
	f := NewFeed(3, nil)
	assert.Empty(t, f.Recent())

	for i := 1; i <= 4; i++ {
		f.Add(Event{PatientID: i})
	}

	got := f.Recent()
	require.Len(t, got, 3)
	assert.Equal(t, 4, got[0].PatientID, "newest first")
	assert.Equal(t, 2, got[2].PatientID, "oldest event was evicted")
}

func TestEventSummary(t *testing.T) {
	ev := Event{Kind: KindPatientInvited, Actor: "Admin", PatientName: "Ada Byron"}
	assert.Equal(t, "Admin invited Ada Byron", ev.Summary())

	ev = Event{Kind: KindPatientCreated, Actor: "test", LegacyPatientID: "L9"}
	assert.Equal(t, "test added Patient L9", ev.Summary())
}

func TestRecorderToFeed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := pubsub.NewWatermillBridge(nil, nil)
	defer bus.Close()

	feed := NewFeed(5, nil)
	require.NoError(t, feed.Start(ctx, bus))

	rec := NewRecorder(bus, nil)
	rec.Record(ctx, KindPatientUpdated, "Admin", domain.Patient{
		PatientID:       7,
		LegacyPatientID: "L7",
		PatientName:     &domain.PatientName{FirstName: "Ada", LastName: "Byron"},
	})

	require.Eventually(t, func() bool { return len(feed.Recent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	ev := feed.Recent()[0]
	assert.Equal(t, KindPatientUpdated, ev.Kind)
	assert.Equal(t, "Ada Byron", ev.PatientName)
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.At.IsZero())
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.Record(context.Background(), KindPatientCreated, "x", domain.Patient{})
	})
}
