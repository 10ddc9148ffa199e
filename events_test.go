package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEvents(t *testing.T, path string) []interactionEvent {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var events []interactionEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var event interactionEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		events = append(events, event)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestEventLoggerAppendsNdjson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ndjson")
	logger := newEventLogger(path)

	item := timelineItem{ID: "7", Group: "Operations"}
	logger.ItemHover(item, true)
	logger.ItemClick(item, false)
	logger.Emit(interactionEvent{Event: eventConfigChange, Detail: map[string]string{"table": "tbl"}})

	events := readEvents(t, path)
	require.Len(t, events, 3)

	assert.Equal(t, eventItemHover, events[0].Event)
	assert.Equal(t, "7", events[0].ItemID)
	assert.Equal(t, "Operations", events[0].Group)
	assert.Equal(t, "true", events[0].Detail["entering"])

	assert.Equal(t, eventItemClick, events[1].Event)
	assert.Equal(t, "false", events[1].Detail["selected"])

	assert.Equal(t, eventConfigChange, events[2].Event)

	// same session stamps every line, timestamps are filled in
	for _, event := range events {
		assert.Equal(t, logger.sessionID, event.SessionID)
		assert.False(t, event.Timestamp.IsZero())
	}
}

func TestEventLoggerDropsBlankEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ndjson")
	logger := newEventLogger(path)

	logger.Emit(interactionEvent{Event: "   "})
	logger.Emit(interactionEvent{})

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNewSessionID(t *testing.T) {
	a := newSessionID()
	b := newSessionID()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
