package iclog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []Event
	err    error
}

func (r *recordingSink) LogIC(_ context.Context, ev Event) error {
	r.events = append(r.events, ev)
	return r.err
}

func testEvent() Event {
	return Event{
		Time:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Character: "Phoenix",
		ShowName:  "Nick",
		OOCName:   "wright",
		IPID:      "0a1b2c",
		AreaID:    1,
		AreaName:  "Courtroom 1",
		Message:   "Objection!",
	}
}

func TestEvent_Speaker(t *testing.T) {
	ev := testEvent()
	assert.Equal(t, "Phoenix Nick", ev.Speaker())

	ev.ShowName = ""
	assert.Equal(t, "Phoenix", ev.Speaker())
}

func TestWriterSink_JSON(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterSink(&buf)

	require.NoError(t, s.LogIC(context.Background(), testEvent()))
	require.NoError(t, s.Close())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "ic", line["msg"])
	assert.Equal(t, "Phoenix Nick", line["speaker"])
	assert.Equal(t, "0a1b2c", line["ipid"])
	assert.Equal(t, "Courtroom 1", line["area"])
	assert.Equal(t, "Objection!", line["message"])
	assert.Equal(t, "2024-03-01T10:00:00Z", line["time"])
	assert.NotContains(t, line, "level")
}

func TestMultiSink(t *testing.T) {
	failing := &recordingSink{err: errors.New("db down")}
	ok := &recordingSink{}

	err := MultiSink{failing, ok}.LogIC(context.Background(), testEvent())

	assert.ErrorContains(t, err, "db down")
	assert.Len(t, failing.events, 1)
	assert.Len(t, ok.events, 1, "later sinks still run")
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard.LogIC(context.Background(), testEvent()))
}
