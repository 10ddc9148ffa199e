package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const bridgeTimeout = 10 * time.Second

// errNoBridge means the widget is running outside a host environment that
// supplies a request bridge. Treated identically to a network failure.
var errNoBridge = errors.New("no host bridge available")

// bridgeEnvelope is the response shape shared by every Bitable endpoint.
// A non-zero code is a remote failure.
type bridgeEnvelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// larkBridge is the injected host call surface: authenticated GET-style
// requests against the Bitable open API. The token is passed through
// untouched; this layer enforces no timeout policy beyond the transport's.
type larkBridge struct {
	base   string
	token  string
	client *http.Client
}

func newLarkBridge(base, token string) *larkBridge {
	return &larkBridge{
		base:   strings.TrimRight(base, "/"),
		token:  token,
		client: &http.Client{Timeout: bridgeTimeout},
	}
}

func (b *larkBridge) Request(ctx context.Context, path string, query url.Values) (*bridgeEnvelope, error) {
	endpoint := b.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.token)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var envelope bridgeEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if envelope.Code != 0 {
		return &envelope, fmt.Errorf("bitable API error: %s", envelope.Msg)
	}
	return &envelope, nil
}

// themeNotice is one host theme push: chart background plus LIGHT/DARK mode.
type themeNotice struct {
	ChartBgColor string `json:"chartBgColor"`
	Theme        string `json:"theme"`
}

// themeFeed fans host theme notifications out to subscribers. Subscribe
// returns the delivery channel and a cancel func the consumer must call on
// teardown.
type themeFeed struct {
	mu   sync.Mutex
	subs map[int]chan themeNotice
	next int
}

func newThemeFeed() *themeFeed {
	return &themeFeed{subs: make(map[int]chan themeNotice)}
}

func (f *themeFeed) Subscribe() (<-chan themeNotice, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	ch := make(chan themeNotice, 4)
	f.subs[id] = ch
	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
}

func (f *themeFeed) Publish(notice themeNotice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- notice:
		default:
		}
	}
}

// configFeed delivers host-pushed widget configurations the same way.
type configFeed struct {
	mu   sync.Mutex
	subs map[int]chan widgetConfig
	next int
}

func newConfigFeed() *configFeed {
	return &configFeed{subs: make(map[int]chan widgetConfig)}
}

func (f *configFeed) Subscribe() (<-chan widgetConfig, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	ch := make(chan widgetConfig, 4)
	f.subs[id] = ch
	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
}

func (f *configFeed) Publish(cfg widgetConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- cfg:
		default:
		}
	}
}

// hostLink bundles the request bridge with the host push channels. A nil
// bridge means every fetch falls back to sample data.
type hostLink struct {
	bridge *larkBridge
	theme  *themeFeed
	config *configFeed
}

func newHostLink(bridge *larkBridge) *hostLink {
	return &hostLink{
		bridge: bridge,
		theme:  newThemeFeed(),
		config: newConfigFeed(),
	}
}

// detectHost builds the link from flags falling back to the environment.
// Either value missing leaves the widget bridgeless.
func detectHost(hostFlag, tokenFlag string) *hostLink {
	base := strings.TrimSpace(hostFlag)
	if base == "" {
		base = strings.TrimSpace(os.Getenv("BITLINE_HOST"))
	}
	token := strings.TrimSpace(tokenFlag)
	if token == "" {
		token = strings.TrimSpace(os.Getenv("BITLINE_TOKEN"))
	}
	if base == "" || token == "" {
		return newHostLink(nil)
	}
	return newHostLink(newLarkBridge(base, token))
}

type themeChangedMsg struct {
	notice themeNotice
}

type hostConfigMsg struct {
	config widgetConfig
}

type feedClosedMsg struct{}

// waitForThemeNotice pumps one feed delivery into the program loop; the
// model re-issues it after each message until the feed closes.
func waitForThemeNotice(ch <-chan themeNotice) tea.Cmd {
	return func() tea.Msg {
		notice, ok := <-ch
		if !ok {
			return feedClosedMsg{}
		}
		return themeChangedMsg{notice: notice}
	}
}

func waitForHostConfig(ch <-chan widgetConfig) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return feedClosedMsg{}
		}
		return hostConfigMsg{config: cfg}
	}
}
