package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

type fallbackKind int

const (
	fallbackEnvironment fallbackKind = iota
	fallbackRemote
	fallbackValidation
)

// dataOrigin tags a gateway result as live or fallback so callers can tell
// real data from the bundled sample set. Reason is human-readable and only
// set on fallbacks.
type dataOrigin struct {
	Live   bool
	Kind   fallbackKind
	Reason string
}

func liveOrigin() dataOrigin {
	return dataOrigin{Live: true}
}

func fallbackOrigin(kind fallbackKind, reason string) dataOrigin {
	return dataOrigin{Kind: kind, Reason: reason}
}

type rowsResult struct {
	Rows   []rowRecord
	Origin dataOrigin
}

type tablesResult struct {
	Tables []tableDescriptor
	Origin dataOrigin
}

type fieldsResult struct {
	Fields []fieldDescriptor
	Origin dataOrigin
}

// tableGateway reads rows, table metadata, and field metadata from the
// remote source. Implementations never fail the caller: every error path
// resolves to a fallback-tagged sample result.
type tableGateway interface {
	FetchRows(ctx context.Context, ref tableRef) rowsResult
	FetchTables(ctx context.Context) tablesResult
	FetchFields(ctx context.Context, ref tableRef) fieldsResult
}

// bitableGateway talks to the Bitable open API through the host bridge.
type bitableGateway struct {
	bridge *larkBridge
	logf   func(format string, args ...any)
}

func newBitableGateway(bridge *larkBridge, logf func(string, ...any)) *bitableGateway {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &bitableGateway{bridge: bridge, logf: logf}
}

type recordEnvelopeData struct {
	Items []struct {
		RecordID string         `json:"record_id"`
		Fields   map[string]any `json:"fields"`
	} `json:"items"`
}

func (g *bitableGateway) FetchRows(ctx context.Context, ref tableRef) rowsResult {
	if g.bridge == nil {
		g.logf("[WARN] no host bridge; serving sample rows")
		return rowsResult{Rows: sampleRows(), Origin: fallbackOrigin(fallbackEnvironment, errNoBridge.Error())}
	}
	path := fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/records", ref.AppToken, ref.TableID)
	query := url.Values{}
	if ref.ViewID != "" {
		query.Set("view_id", ref.ViewID)
	}
	envelope, err := g.bridge.Request(ctx, path, query)
	if err != nil {
		g.logf("[WARN] fetch rows failed: %v; serving sample rows", err)
		return rowsResult{Rows: sampleRows(), Origin: fallbackOrigin(fallbackRemote, err.Error())}
	}
	var data recordEnvelopeData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		g.logf("[WARN] decode rows failed: %v; serving sample rows", err)
		return rowsResult{Rows: sampleRows(), Origin: fallbackOrigin(fallbackRemote, err.Error())}
	}
	rows := make([]rowRecord, 0, len(data.Items))
	for _, item := range data.Items {
		row := rowRecord{rowIDKey: item.RecordID}
		for name, value := range item.Fields {
			row[name] = value
		}
		rows = append(rows, row)
	}
	return rowsResult{Rows: rows, Origin: liveOrigin()}
}

type appsEnvelopeData struct {
	Items []struct {
		AppToken string `json:"app_token"`
		Name     string `json:"name"`
		Tables   []struct {
			TableID string `json:"table_id"`
		} `json:"tables"`
	} `json:"items"`
}

func (g *bitableGateway) FetchTables(ctx context.Context) tablesResult {
	if g.bridge == nil {
		g.logf("[WARN] no host bridge; serving sample table list")
		return tablesResult{Tables: sampleTables(), Origin: fallbackOrigin(fallbackEnvironment, errNoBridge.Error())}
	}
	envelope, err := g.bridge.Request(ctx, "/open-apis/bitable/v1/apps", nil)
	if err != nil {
		g.logf("[WARN] fetch tables failed: %v; serving sample table list", err)
		return tablesResult{Tables: sampleTables(), Origin: fallbackOrigin(fallbackRemote, err.Error())}
	}
	var data appsEnvelopeData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		g.logf("[WARN] decode tables failed: %v; serving sample table list", err)
		return tablesResult{Tables: sampleTables(), Origin: fallbackOrigin(fallbackRemote, err.Error())}
	}
	var tables []tableDescriptor
	for _, app := range data.Items {
		name := app.Name
		if name == "" {
			name = "Unknown Table"
		}
		tableID := ""
		if len(app.Tables) > 0 {
			tableID = app.Tables[0].TableID
		}
		// Entries without a table cannot be bound.
		if tableID == "" {
			continue
		}
		tables = append(tables, tableDescriptor{
			AppToken:  app.AppToken,
			TableID:   tableID,
			TableName: name,
		})
	}
	return tablesResult{Tables: tables, Origin: liveOrigin()}
}

type fieldsEnvelopeData struct {
	Items []struct {
		Name string          `json:"name"`
		Type json.RawMessage `json:"type"`
	} `json:"items"`
}

func (g *bitableGateway) FetchFields(ctx context.Context, ref tableRef) fieldsResult {
	if g.bridge == nil {
		g.logf("[WARN] no host bridge; serving sample field list")
		return fieldsResult{Fields: sampleFields(), Origin: fallbackOrigin(fallbackEnvironment, errNoBridge.Error())}
	}
	path := fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/fields", ref.AppToken, ref.TableID)
	envelope, err := g.bridge.Request(ctx, path, nil)
	if err != nil {
		g.logf("[WARN] fetch fields failed: %v; serving sample field list", err)
		return fieldsResult{Fields: sampleFields(), Origin: fallbackOrigin(fallbackRemote, err.Error())}
	}
	var data fieldsEnvelopeData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		g.logf("[WARN] decode fields failed: %v; serving sample field list", err)
		return fieldsResult{Fields: sampleFields(), Origin: fallbackOrigin(fallbackRemote, err.Error())}
	}
	fields := make([]fieldDescriptor, 0, len(data.Items))
	for _, item := range data.Items {
		fields = append(fields, fieldDescriptor{
			Name: item.Name,
			Type: decodeFieldType(item.Type),
		})
	}
	return fieldsResult{Fields: fields, Origin: liveOrigin()}
}

// decodeFieldType tolerates both the string type tags of the sample data
// and the numeric type codes the live API uses for its field kinds.
func decodeFieldType(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		switch n {
		case 1:
			return "text"
		case 3:
			return "select"
		case 5:
			return "date"
		default:
			return fmt.Sprintf("type_%d", n)
		}
	}
	return ""
}
