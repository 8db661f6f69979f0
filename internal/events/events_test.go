package events

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogObserver_WritesFields(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := NewLogObserver(zerolog.New(buf), zerolog.InfoLevel)

	obs.Observe(context.Background(), Event{
		Name:   "items.total.computed",
		Fields: map[string]interface{}{"item_count": 2},
	})

	out := buf.String()
	assert.Contains(t, out, `"event":"items.total.computed"`)
	assert.Contains(t, out, `"item_count":2`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestLogObserver_RespectsLoggerLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := zerolog.New(buf).Level(zerolog.InfoLevel)
	obs := NewLogObserver(log, zerolog.DebugLevel)

	obs.Observe(context.Background(), Event{Name: "quiet"})

	assert.Zero(t, buf.Len(), "debug event should be filtered by an info logger")
}

func TestNop(t *testing.T) {
	// Must not panic on nil fields or a nil context value.
	Nop().Observe(context.Background(), Event{Name: "anything"})
}

func TestFunc(t *testing.T) {
	var got Event
	obs := Func(func(_ context.Context, e Event) { got = e })

	obs.Observe(context.Background(), Event{Name: "x"})

	assert.Equal(t, "x", got.Name)
}

func TestRecorder_Concurrent(t *testing.T) {
	rec := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "even"
			if i%2 == 1 {
				name = "odd"
			}
			rec.Observe(context.Background(), Event{Name: name})
		}(i)
	}
	wg.Wait()

	require.Len(t, rec.Events(), 50)
	assert.Len(t, rec.Named("odd"), 25)
	assert.Len(t, rec.Named("even"), 25)
}
