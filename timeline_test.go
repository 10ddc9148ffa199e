package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToTimelineItems(t *testing.T) {
	rows := []rowRecord{
		{rowIDKey: "r1", "name": "Kickoff", "date": "2024-01-15T09:00:00"},
	}
	mapping := fieldMapping{TitleField: "name", DateField: "date"}

	items := convertToTimelineItems(rows, mapping)
	require.Len(t, items, 1)
	assert.Equal(t, "r1", items[0].ID)
	assert.Equal(t, "Kickoff", items[0].Title)
	assert.Equal(t, "2024-01-15", items[0].Date)
	assert.Empty(t, items[0].Group)
	assert.Empty(t, items[0].Description)
	assert.Empty(t, items[0].Color)
}

func TestConvertToTimelineItemsPositionalFallbacks(t *testing.T) {
	rows := []rowRecord{
		{"date": "2024-01-15"},
		{"date": "2024-01-16"},
	}
	items := convertToTimelineItems(rows, fieldMapping{TitleField: "name", DateField: "date"})
	require.Len(t, items, 2)
	assert.Equal(t, "item_0", items[0].ID)
	assert.Equal(t, "Item 1", items[0].Title)
	assert.Equal(t, "item_1", items[1].ID)
	assert.Equal(t, "Item 2", items[1].Title)
}

func TestConvertToTimelineItemsIsTotal(t *testing.T) {
	assert.Empty(t, convertToTimelineItems(nil, fieldMapping{}))
	assert.Empty(t, convertToTimelineItems([]rowRecord{}, fieldMapping{}))

	// a row with none of the mapped fields still yields an item
	items := convertToTimelineItems([]rowRecord{{}}, fieldMapping{TitleField: "t", DateField: "d"})
	require.Len(t, items, 1)
}

func TestConvertToTimelineItemsCoercesNumericDates(t *testing.T) {
	// Bitable date columns arrive as epoch milliseconds
	rows := []rowRecord{{rowIDKey: "r1", "name": "n", "when": float64(1705276800000)}}
	items := convertToTimelineItems(rows, fieldMapping{TitleField: "name", DateField: "when"})
	require.Len(t, items, 1)
	assert.Equal(t, "1705276800000", items[0].Date)
	assert.True(t, isValidDate(items[0].Date))
	assert.Equal(t, "January 15, 2024", formatDate(items[0].Date, dateFormatFull))
}

func TestConvertToTimelineItemsOptionalRoles(t *testing.T) {
	rows := []rowRecord{{
		rowIDKey: "r1", "name": "n", "date": "2024-02-01",
		"phase": "Design", "note": "detail", "hue": "#ff0000",
	}}
	mapping := fieldMapping{
		TitleField: "name", DateField: "date",
		GroupField: "phase", DescriptionField: "note", ColorField: "hue",
	}
	items := convertToTimelineItems(rows, mapping)
	require.Len(t, items, 1)
	assert.Equal(t, "Design", items[0].Group)
	assert.Equal(t, "detail", items[0].Description)
	assert.Equal(t, "#ff0000", items[0].Color)
}

func TestExtractGroups(t *testing.T) {
	items := []timelineItem{
		{Group: "beta"},
		{Group: "alpha"},
		{Group: ""},
		{Group: "beta"},
		{Group: "gamma"},
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, extractGroups(items))
	assert.Empty(t, extractGroups(nil))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, isValidDate("2024-01-15"))
	assert.True(t, isValidDate("2024-01-15T09:00:00"))
	assert.True(t, isValidDate("2024/01/15"))
	assert.False(t, isValidDate("not-a-date"))
	assert.False(t, isValidDate(""))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "01/15/2024", formatDate("2024-01-15", dateFormatShort))
	assert.Equal(t, "January 15, 2024", formatDate("2024-01-15", dateFormatFull))
	assert.Equal(t, "bad", formatDate("bad", dateFormatFull))
	assert.Equal(t, "", formatDate("", dateFormatShort))
}

func TestGenerateDefaultColor(t *testing.T) {
	// palette cycles every 8
	assert.Equal(t, generateDefaultColor(0), generateDefaultColor(8))
	assert.Equal(t, generateDefaultColor(3), generateDefaultColor(11))
	assert.NotEqual(t, generateDefaultColor(0), generateDefaultColor(1))
	for i := 0; i < 16; i++ {
		assert.Regexp(t, `^#[0-9a-f]{6}$`, generateDefaultColor(i))
	}
}

func TestFilterByGroup(t *testing.T) {
	items := []timelineItem{
		{ID: "1", Group: "dev"},
		{ID: "2", Group: "design"},
		{ID: "3", Group: "dev"},
	}
	filtered := filterByGroup(items, "dev")
	require.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "3", filtered[1].ID)

	// exact match only
	assert.Empty(t, filterByGroup(items, "de"))
	assert.Empty(t, filterByGroup(items, "unknown"))
	assert.Len(t, filterByGroup(items, ""), 3)
}

func TestSortItemsByDate(t *testing.T) {
	items := []timelineItem{
		{ID: "c", Date: "2024-03-01"},
		{ID: "bad1", Date: "mystery"},
		{ID: "a", Date: "2024-01-01"},
		{ID: "bad2", Date: "???"},
		{ID: "b", Date: "2024-02-01"},
	}
	sorted := sortItemsByDate(items)
	ids := make([]string, 0, len(sorted))
	for _, item := range sorted {
		ids = append(ids, item.ID)
	}
	// unparsable dates sort last, keeping their relative order
	assert.Equal(t, []string{"a", "b", "c", "bad1", "bad2"}, ids)

	// input untouched
	assert.Equal(t, "c", items[0].ID)
}

func TestSampleDataset(t *testing.T) {
	items := sampleItems()
	require.Len(t, items, 7)
	for i, item := range items {
		assert.NotEmpty(t, item.ID, fmt.Sprintf("item %d", i))
		assert.True(t, isValidDate(item.Date), fmt.Sprintf("item %d date", i))
	}
	assert.Equal(t, extractGroups(items), sampleGroups())
	assert.Len(t, sampleRows(), 7)
}
