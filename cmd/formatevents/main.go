package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

type rawEvent struct {
	SessionID string            `json:"session_id"`
	Timestamp time.Time         `json:"timestamp"`
	Event     string            `json:"event"`
	ItemID    string            `json:"item_id"`
	Group     string            `json:"group"`
	Detail    map[string]string `json:"detail"`
}

func main() {
	var inputPath string
	var sessionOnly string
	flag.StringVar(&inputPath, "in", "", "input events.ndjson path (required)")
	flag.StringVar(&sessionOnly, "session", "", "only show events from one session id")
	flag.Parse()

	if inputPath == "" {
		exitWithError(errors.New("missing --in path"))
	}

	events, err := parseEvents(inputPath)
	if err != nil {
		exitWithError(fmt.Errorf("parse events: %w", err))
	}

	counts := make(map[string]int)
	for _, event := range events {
		if sessionOnly != "" && event.SessionID != sessionOnly {
			continue
		}
		counts[event.Event]++
		fmt.Printf("%s  %-16s %s\n",
			event.Timestamp.Format("2006-01-02 15:04:05"),
			event.Event,
			describe(event))
	}

	fmt.Println()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%6d  %s\n", counts[name], name)
	}
}

func describe(event rawEvent) string {
	var parts []string
	if event.ItemID != "" {
		parts = append(parts, "item="+event.ItemID)
	}
	if event.Group != "" {
		parts = append(parts, "group="+event.Group)
	}
	keys := make([]string, 0, len(event.Detail))
	for key := range event.Detail {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		parts = append(parts, key+"="+event.Detail[key])
	}
	return strings.Join(parts, " ")
}

func parseEvents(path string) ([]rawEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []rawEvent
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var event rawEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			// skip torn lines rather than failing the whole file
			continue
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
