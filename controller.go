package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type loadState int

const (
	stateIdle loadState = iota
	stateLoading
	stateReady
	stateErrored
)

// opSlot tracks one independently-triggered operation. The epoch counter
// discards resolutions that were superseded by a newer request, so a slow
// fetch can never overwrite fresher state.
type opSlot struct {
	state loadState
	err   string
	epoch int
}

func (s *opSlot) begin() int {
	s.epoch++
	s.state = stateLoading
	s.err = ""
	return s.epoch
}

func (s *opSlot) stale(epoch int) bool {
	return epoch != s.epoch
}

func (s *opSlot) finish(errText string) {
	if errText == "" {
		s.state = stateReady
		s.err = ""
		return
	}
	s.state = stateErrored
	s.err = errText
}

func (s *opSlot) loading() bool {
	return s.state == stateLoading
}

const sampleFetchDelay = 600 * time.Millisecond

type rowsLoadedMsg struct {
	epoch  int
	items  []timelineItem
	groups []string
	origin dataOrigin
}

type sampleDelayMsg struct {
	epoch int
}

type tablesLoadedMsg struct {
	epoch  int
	tables []tableDescriptor
	origin dataOrigin
}

type fieldsLoadedMsg struct {
	epoch  int
	fields []fieldDescriptor
	origin dataOrigin
}

// dataController owns the fetched collections and the three operation
// slots. Collections are recomputed wholesale on every successful fetch.
type dataController struct {
	gateway tableGateway

	items  []timelineItem
	groups []string
	tables []tableDescriptor
	fields []fieldDescriptor

	rowsOp   opSlot
	tablesOp opSlot
	fieldsOp opSlot

	// origin of the current item set, for the status line.
	itemsOrigin dataOrigin
}

func newDataController(gateway tableGateway) *dataController {
	return &dataController{gateway: gateway}
}

// Refresh re-enters Loading for the rows slot. A fully specified source is
// fetched and normalized; anything less skips the network and lands on the
// bundled sample set after a fixed simulated delay.
func (c *dataController) Refresh(cfg widgetConfig) tea.Cmd {
	epoch := c.rowsOp.begin()
	if !cfg.ready() {
		return tea.Tick(sampleFetchDelay, func(time.Time) tea.Msg {
			return sampleDelayMsg{epoch: epoch}
		})
	}
	gateway := c.gateway
	ref := cfg.tableRef
	mapping := cfg.fieldMapping
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bridgeTimeout)
		defer cancel()
		res := gateway.FetchRows(ctx, ref)
		if !res.Origin.Live {
			// Raw sample rows do not answer to the user's field mapping;
			// serve the canonical sample set instead.
			return rowsLoadedMsg{
				epoch:  epoch,
				items:  sampleItems(),
				groups: sampleGroups(),
				origin: res.Origin,
			}
		}
		items := convertToTimelineItems(res.Rows, mapping)
		return rowsLoadedMsg{
			epoch:  epoch,
			items:  items,
			groups: extractGroups(items),
			origin: res.Origin,
		}
	}
}

func (c *dataController) FetchTables() tea.Cmd {
	epoch := c.tablesOp.begin()
	gateway := c.gateway
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bridgeTimeout)
		defer cancel()
		res := gateway.FetchTables(ctx)
		return tablesLoadedMsg{epoch: epoch, tables: res.Tables, origin: res.Origin}
	}
}

// FetchFields fails fast when the table identifiers are absent; no network
// call is made.
func (c *dataController) FetchFields(cfg widgetConfig) tea.Cmd {
	if !cfg.complete() {
		c.fieldsOp.epoch++
		c.fieldsOp.finish("missing required configuration: appToken and tableId")
		return nil
	}
	epoch := c.fieldsOp.begin()
	gateway := c.gateway
	ref := cfg.tableRef
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), bridgeTimeout)
		defer cancel()
		res := gateway.FetchFields(ctx, ref)
		return fieldsLoadedMsg{epoch: epoch, fields: res.Fields, origin: res.Origin}
	}
}

// Apply folds a controller message into the state. It reports whether the
// message belonged to this controller so the model can stop routing it.
func (c *dataController) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case sampleDelayMsg:
		if c.rowsOp.stale(msg.epoch) {
			return true
		}
		c.items = sampleItems()
		c.groups = sampleGroups()
		c.itemsOrigin = fallbackOrigin(fallbackValidation, "source not configured")
		c.rowsOp.finish("")
		return true
	case rowsLoadedMsg:
		if c.rowsOp.stale(msg.epoch) {
			return true
		}
		c.items = msg.items
		c.groups = msg.groups
		c.itemsOrigin = msg.origin
		c.rowsOp.finish(remoteErrorText(msg.origin, "Failed to fetch data"))
		return true
	case tablesLoadedMsg:
		if c.tablesOp.stale(msg.epoch) {
			return true
		}
		c.tables = msg.tables
		c.tablesOp.finish(remoteErrorText(msg.origin, "Failed to fetch tables"))
		return true
	case fieldsLoadedMsg:
		if c.fieldsOp.stale(msg.epoch) {
			return true
		}
		c.fields = msg.fields
		c.fieldsOp.finish(remoteErrorText(msg.origin, "Failed to fetch fields"))
		return true
	}
	return false
}

// remoteErrorText surfaces remote failures in the banner. Environment
// fallbacks stay silent beyond the log, matching the widget's fail-open
// policy for development contexts.
func remoteErrorText(origin dataOrigin, prefix string) string {
	if origin.Live || origin.Kind != fallbackRemote {
		return ""
	}
	return prefix + ": " + origin.Reason
}

// Error returns the first error among the slots, rows first.
func (c *dataController) Error() string {
	for _, slot := range []*opSlot{&c.rowsOp, &c.tablesOp, &c.fieldsOp} {
		if slot.err != "" {
			return slot.err
		}
	}
	return ""
}

func (c *dataController) ClearErrors() {
	for _, slot := range []*opSlot{&c.rowsOp, &c.tablesOp, &c.fieldsOp} {
		if slot.state == stateErrored {
			slot.state = stateReady
		}
		slot.err = ""
	}
}

func (c *dataController) Busy() bool {
	return c.rowsOp.loading() || c.tablesOp.loading() || c.fieldsOp.loading()
}
