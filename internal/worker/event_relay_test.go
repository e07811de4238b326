package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/libenaigi/CUHIRE/internal/events"
)

type recordingPublisher struct {
	mu       sync.Mutex
	channels []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels = append(p.channels, channel)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func TestEventRelay_PublishesJSON(t *testing.T) {
	pub := &recordingPublisher{}
	relay := NewEventRelay(pub, "cuhire.events", 8, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	relay.Start(ctx)

	require.True(t, relay.Enqueue(events.Event{ID: "e1", Type: events.EventJobCreated, SubjectID: "job-1"}))
	require.Eventually(t, func() bool { return pub.count() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-relay.Done()

	assert.Equal(t, "cuhire.events", pub.channels[0])
	var decoded events.Event
	require.NoError(t, json.Unmarshal(pub.payloads[0], &decoded))
	assert.Equal(t, events.EventJobCreated, decoded.Type)
	assert.Equal(t, "job-1", decoded.SubjectID)
}

func TestEventRelay_DropsWhenFull(t *testing.T) {
	relay := NewEventRelay(&recordingPublisher{}, "c", 1, zap.NewNop())

	assert.True(t, relay.Enqueue(events.Event{ID: "e1"}))
	assert.False(t, relay.Enqueue(events.Event{ID: "e2"}))
}

func TestEventRelay_DrainsOnShutdown(t *testing.T) {
	pub := &recordingPublisher{}
	relay := NewEventRelay(pub, "c", 4, zap.NewNop())

	relay.Enqueue(events.Event{ID: "e1"})
	relay.Enqueue(events.Event{ID: "e2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	relay.Start(ctx)
	<-relay.Done()

	assert.Equal(t, 2, pub.count())
}

func TestEventRelay_PublishErrorsAreSwallowed(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("redis down")}
	relay := NewEventRelay(pub, "c", 2, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	relay.Start(ctx)
	relay.Enqueue(events.Event{ID: "e1"})
	require.Eventually(t, func() bool { return pub.count() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-relay.Done()
}
