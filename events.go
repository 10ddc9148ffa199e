package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Interaction events replace the click/hover callbacks the host dashboard
// would receive: one ndjson line per user action or data-source fallback.

const (
	eventItemClick     = "item_click"
	eventItemHover     = "item_hover"
	eventItemSelect    = "item_select"
	eventConfigChange  = "config_change"
	eventFetchFallback = "fetch_fallback"
	eventThemeChange   = "theme_change"
)

type interactionEvent struct {
	SessionID string            `json:"session_id"`
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	ItemID    string            `json:"item_id,omitempty"`
	Group     string            `json:"group,omitempty"`
	Detail    map[string]string `json:"detail,omitempty"`
}

type eventLogger struct {
	path      string
	sessionID string
	mu        sync.Mutex
}

func newEventLogger(path string) *eventLogger {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	return &eventLogger{path: path, sessionID: newSessionID()}
}

func (l *eventLogger) Emit(event interactionEvent) {
	if l == nil || strings.TrimSpace(event.Event) == "" {
		return
	}
	if event.SessionID == "" {
		event.SessionID = l.sessionID
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if len(event.Detail) == 0 {
		event.Detail = nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	data = append(data, '\n')
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(data)
}

func (l *eventLogger) ItemHover(item timelineItem, entering bool) {
	l.Emit(interactionEvent{
		Event:  eventItemHover,
		ItemID: item.ID,
		Group:  item.Group,
		Detail: map[string]string{"entering": fmt.Sprint(entering)},
	})
}

func (l *eventLogger) ItemClick(item timelineItem, selected bool) {
	l.Emit(interactionEvent{
		Event:  eventItemClick,
		ItemID: item.ID,
		Group:  item.Group,
		Detail: map[string]string{"selected": fmt.Sprint(selected)},
	})
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("%x", time.Now().UnixNano())
}
