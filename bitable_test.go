package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayFor(t *testing.T, handler http.HandlerFunc) *bitableGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newBitableGateway(newLarkBridge(srv.URL, "test-token"), nil)
}

func TestFetchRowsLive(t *testing.T) {
	var gotPath, gotAuth, gotView string
	gw := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotView = r.URL.Query().Get("view_id")
		json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"data": map[string]any{
				"items": []map[string]any{
					{"record_id": "rec1", "fields": map[string]any{"name": "Kickoff", "date": "2024-01-15T09:00:00"}},
					{"record_id": "rec2", "fields": map[string]any{"name": "Launch", "date": float64(1712707200000)}},
				},
			},
		})
	})

	res := gw.FetchRows(context.Background(), tableRef{AppToken: "app", TableID: "tbl", ViewID: "viw"})
	assert.True(t, res.Origin.Live)
	assert.Equal(t, "/open-apis/bitable/v1/apps/app/tables/tbl/records", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "viw", gotView)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "rec1", res.Rows[0][rowIDKey])
	assert.Equal(t, "Kickoff", res.Rows[0]["name"])
}

func TestFetchRowsAPIError(t *testing.T) {
	gw := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"code": 91402, "msg": "NOTEXIST"})
	})

	res := gw.FetchRows(context.Background(), tableRef{AppToken: "app", TableID: "tbl"})
	assert.False(t, res.Origin.Live)
	assert.Equal(t, fallbackRemote, res.Origin.Kind)
	assert.Contains(t, res.Origin.Reason, "NOTEXIST")
	assert.Len(t, res.Rows, 7)
}

func TestFetchRowsWithoutBridge(t *testing.T) {
	gw := newBitableGateway(nil, nil)
	res := gw.FetchRows(context.Background(), tableRef{AppToken: "app", TableID: "tbl"})
	assert.False(t, res.Origin.Live)
	assert.Equal(t, fallbackEnvironment, res.Origin.Kind)
	assert.Len(t, res.Rows, 7)
}

func TestFetchTablesLive(t *testing.T) {
	gw := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"data": map[string]any{
				"items": []map[string]any{
					{"app_token": "appA", "name": "Roadmap", "tables": []map[string]any{{"table_id": "tblA"}}},
					{"app_token": "appB", "tables": []map[string]any{{"table_id": "tblB"}}},
					{"app_token": "appC", "name": "No tables"},
				},
			},
		})
	})

	res := gw.FetchTables(context.Background())
	assert.True(t, res.Origin.Live)
	require.Len(t, res.Tables, 2)
	assert.Equal(t, tableDescriptor{AppToken: "appA", TableID: "tblA", TableName: "Roadmap"}, res.Tables[0])
	assert.Equal(t, "Unknown Table", res.Tables[1].TableName)
}

func TestFetchTablesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	gw := newBitableGateway(newLarkBridge(srv.URL, "token"), nil)

	res := gw.FetchTables(context.Background())
	assert.False(t, res.Origin.Live)
	assert.Equal(t, fallbackRemote, res.Origin.Kind)
	assert.Equal(t, sampleTables(), res.Tables)
}

func TestFetchFieldsLive(t *testing.T) {
	var gotPath string
	gw := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"data": map[string]any{
				"items": []map[string]any{
					{"name": "name", "type": 1},
					{"name": "date", "type": 5},
					{"name": "group", "type": 3},
					{"name": "note", "type": "text"},
					{"name": "exotic", "type": 17},
				},
			},
		})
	})

	res := gw.FetchFields(context.Background(), tableRef{AppToken: "app", TableID: "tbl"})
	assert.True(t, res.Origin.Live)
	assert.Equal(t, "/open-apis/bitable/v1/apps/app/tables/tbl/fields", gotPath)
	require.Len(t, res.Fields, 5)
	assert.Equal(t, fieldDescriptor{Name: "name", Type: "text"}, res.Fields[0])
	assert.Equal(t, fieldDescriptor{Name: "date", Type: "date"}, res.Fields[1])
	assert.Equal(t, fieldDescriptor{Name: "group", Type: "select"}, res.Fields[2])
	assert.Equal(t, fieldDescriptor{Name: "note", Type: "text"}, res.Fields[3])
	assert.Equal(t, fieldDescriptor{Name: "exotic", Type: "type_17"}, res.Fields[4])
}

func TestBridgeEnvelopeDecode(t *testing.T) {
	gw := gatewayFor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	res := gw.FetchRows(context.Background(), tableRef{AppToken: "a", TableID: "b"})
	assert.Equal(t, fallbackRemote, res.Origin.Kind)
	assert.Len(t, res.Rows, 7)
}

func TestFeedsDeliverAndCancel(t *testing.T) {
	feed := newThemeFeed()
	ch, cancel := feed.Subscribe()

	feed.Publish(themeNotice{Theme: "DARK", ChartBgColor: "#141414"})
	notice := <-ch
	assert.Equal(t, "DARK", notice.Theme)

	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	// publishing after cancel must not panic
	feed.Publish(themeNotice{Theme: "LIGHT"})
}

func TestDetectHostRequiresBothValues(t *testing.T) {
	t.Setenv("BITLINE_HOST", "")
	t.Setenv("BITLINE_TOKEN", "")

	assert.Nil(t, detectHost("", "").bridge)
	assert.Nil(t, detectHost("http://host", "").bridge)
	assert.Nil(t, detectHost("", "token").bridge)
	require.NotNil(t, detectHost("http://host/", "token").bridge)
	assert.Equal(t, "http://host", detectHost("http://host/", "token").bridge.base)
}
