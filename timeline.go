package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

type itemStatus string

const (
	statusCompleted  itemStatus = "completed"
	statusPending    itemStatus = "pending"
	statusInProgress itemStatus = "in_progress"
	statusImportant  itemStatus = "important"
)

type itemPriority string

const (
	priorityHigh   itemPriority = "high"
	priorityMedium itemPriority = "medium"
	priorityLow    itemPriority = "low"
)

// timelineItem is the canonical record rendered as one timeline entry.
type timelineItem struct {
	ID          string
	Title       string
	Date        string
	Group       string
	Description string
	Color       string
	Status      itemStatus
	Priority    itemPriority
	Assignee    string
	Milestone   bool
	Tags        []string
}

// tableRef identifies a remote table. ViewID is optional.
type tableRef struct {
	AppToken string
	TableID  string
	ViewID   string
}

func (r tableRef) complete() bool {
	return r.AppToken != "" && r.TableID != ""
}

// fieldMapping assigns source columns to timeline roles. Title and Date are
// required for a live fetch; the rest degrade to empty values when unset or
// missing from a row.
type fieldMapping struct {
	TitleField       string
	DateField        string
	GroupField       string
	DescriptionField string
	ColorField       string
}

// widgetConfig is the full configuration held by the host (or edited in the
// config panel).
type widgetConfig struct {
	tableRef
	fieldMapping
	SelectedGroup string
}

func (c widgetConfig) ready() bool {
	return c.complete() && c.TitleField != "" && c.DateField != ""
}

type fieldDescriptor struct {
	Name string
	Type string
}

type tableDescriptor struct {
	AppToken  string
	TableID   string
	TableName string
}

// rowRecord is one raw row as returned by the gateway: the record id plus
// the field values keyed by column name.
type rowRecord map[string]any

const rowIDKey = "_id"

// convertToTimelineItems maps raw rows onto canonical items using the
// configured field roles. It is total: any slice input yields one item per
// row, nil yields an empty slice.
func convertToTimelineItems(rows []rowRecord, mapping fieldMapping) []timelineItem {
	items := make([]timelineItem, 0, len(rows))
	for i, row := range rows {
		item := timelineItem{
			ID:    stringValue(row[rowIDKey]),
			Title: stringValue(row[mapping.TitleField]),
			Date:  normalizeDateValue(row[mapping.DateField]),
		}
		if item.ID == "" {
			// Positional ids are not stable across reorderings.
			item.ID = fmt.Sprintf("item_%d", i)
		}
		if item.Title == "" {
			item.Title = fmt.Sprintf("Item %d", i+1)
		}
		if mapping.GroupField != "" {
			item.Group = stringValue(row[mapping.GroupField])
		}
		if mapping.DescriptionField != "" {
			item.Description = stringValue(row[mapping.DescriptionField])
		}
		if mapping.ColorField != "" {
			item.Color = stringValue(row[mapping.ColorField])
		}
		items = append(items, item)
	}
	return items
}

// normalizeDateValue truncates ISO datetimes to their date prefix and
// coerces non-string cells through generic string conversion. Bitable date
// columns arrive as epoch-millisecond numbers, which render as integer text
// and are still accepted by parseWhen.
func normalizeDateValue(raw any) string {
	if s, ok := raw.(string); ok {
		if idx := strings.IndexByte(s, 'T'); idx >= 0 {
			return s[:idx]
		}
		return s
	}
	return stringValue(raw)
}

func stringValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; date cells are whole milliseconds.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// extractGroups returns the distinct non-empty group values, sorted
// ascending.
func extractGroups(items []timelineItem) []string {
	seen := make(map[string]struct{})
	var groups []string
	for _, item := range items {
		if item.Group == "" {
			continue
		}
		if _, ok := seen[item.Group]; ok {
			continue
		}
		seen[item.Group] = struct{}{}
		groups = append(groups, item.Group)
	}
	sort.Strings(groups)
	return groups
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"01/02/2006",
}

// parseWhen parses the date strings this widget produces or receives:
// ISO dates and datetimes, slash dates, and epoch milliseconds.
func parseWhen(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}

func isValidDate(value string) bool {
	_, ok := parseWhen(value)
	return ok
}

type dateFormat string

const (
	dateFormatFull  dateFormat = "full"
	dateFormatShort dateFormat = "short"
)

// formatDate renders a date string for display. Unparsable input is
// returned unchanged.
func formatDate(value string, format dateFormat) string {
	t, ok := parseWhen(value)
	if !ok {
		return value
	}
	if format == dateFormatShort {
		return t.Format("01/02/2006")
	}
	return t.Format("January 2, 2006")
}

var defaultColors = []string{
	"#1890ff", "#52c41a", "#faad14", "#f5222d",
	"#722ed1", "#13c2c2", "#fa8c16", "#eb2f96",
}

// generateDefaultColor cycles through a fixed 8-color palette.
func generateDefaultColor(index int) string {
	if index < 0 {
		index = -index
	}
	return defaultColors[index%len(defaultColors)]
}

// filterByGroup keeps only items whose group matches exactly. An empty
// selection keeps everything.
func filterByGroup(items []timelineItem, group string) []timelineItem {
	if group == "" {
		return items
	}
	filtered := make([]timelineItem, 0, len(items))
	for _, item := range items {
		if item.Group == group {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// sortItemsByDate orders items ascending by parsed date. Items whose date
// does not parse sort after every parsable item, keeping their relative
// order.
func sortItemsByDate(items []timelineItem) []timelineItem {
	sorted := append([]timelineItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, okI := parseWhen(sorted[i].Date)
		tj, okJ := parseWhen(sorted[j].Date)
		if okI != okJ {
			return okI
		}
		if !okI {
			return false
		}
		return ti.Before(tj)
	})
	return sorted
}
