package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/tetris-pwa/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	validate := func(name, raw string) {
		t.Helper()
		if err := protocol.Validate(name, []byte(raw)); err != nil {
			t.Fatalf("validate %s: %v", name, err)
		}
	}

	validate(protocol.SchemaClient, `{"type":"key","key":"ArrowDown"}`)
	validate(protocol.SchemaClient, `{"type":"key","key":" "}`)
	validate(protocol.SchemaClient, `{"type":"control","control":"btn-drop"}`)
	validate(protocol.SchemaClient, `{"type":"ping"}`)

	validate(protocol.SchemaWelcome, `{
	  "type":"welcome",
	  "protocol_version":"1",
	  "session_id":"0b7c1a3e-2f1d-4a51-9f3e-1c2d3e4f5a6b",
	  "mode":"tetris",
	  "cols":10,
	  "rows":20,
	  "tick_rate":60,
	  "palette":{"I":"#00d4ff","O":"#ffd700"}
	}`)

	validate(protocol.SchemaState, `{
	  "type":"state",
	  "revision":3,
	  "tick":0,
	  "phase":"running",
	  "overlay":{"visible":false,"title":"","message":"","button":""},
	  "stats":{"score":1,"level":1,"lines":0},
	  "board":["....","...."],
	  "piece":{"kind":"T","cells":[[4,0],[3,1],[4,1],[5,1]]},
	  "ghost":[[4,18],[3,19],[4,19],[5,19]],
	  "next":{"kind":"I","cells":[[0,0],[1,0],[2,0],[3,0]]},
	  "banner":"",
	  "elapsed_ms":16
	}`)

	validate(protocol.SchemaManifest, `{
	  "name":"Tetris",
	  "short_name":"Tetris",
	  "start_url":".",
	  "display":"standalone",
	  "icons":[{"src":"icons/icon-192.png","sizes":"192x192","type":"image/png"}]
	}`)
}

func TestSchemas_RejectInvalidClientMessages(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown type", `{"type":"shout"}`},
		{"missing type", `{"key":"ArrowDown"}`},
		{"key without key", `{"type":"key"}`},
		{"empty key", `{"type":"key","key":""}`},
		{"control with spaces", `{"type":"control","control":"btn drop"}`},
		{"not an object", `["key"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := protocol.DecodeClient([]byte(tt.raw)); err == nil {
				t.Errorf("DecodeClient(%s) succeeded, want error", tt.raw)
			}
		})
	}
}

func TestDecodeClient(t *testing.T) {
	m, err := protocol.DecodeClient([]byte(`{"type":"control","control":"btn-down"}`))
	if err != nil {
		t.Fatalf("DecodeClient: %v", err)
	}
	if m.Type != protocol.TypeControl || m.Control != "btn-down" {
		t.Errorf("got %+v", m)
	}

	if _, err := protocol.DecodeClient([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDecodeBase(t *testing.T) {
	b, err := protocol.DecodeBase([]byte(`{"type":"pong"}`))
	if err != nil {
		t.Fatal(err)
	}
	if b.Type != protocol.TypePong {
		t.Errorf("type = %q", b.Type)
	}

	var raw map[string]any
	errMsg, _ := json.Marshal(protocol.NewError(protocol.ErrBadRequest, "bad"))
	if err := json.Unmarshal(errMsg, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["type"] != protocol.TypeError || raw["code"] != protocol.ErrBadRequest {
		t.Errorf("error frame = %v", raw)
	}
}

func TestKnownCodes(t *testing.T) {
	for _, code := range []string{"", protocol.ErrBadRequest, protocol.ErrUnknownKey, protocol.ErrInternal} {
		if !protocol.IsKnownCode(code) {
			t.Errorf("IsKnownCode(%q) = false", code)
		}
	}
	if protocol.IsKnownCode("E_NOPE") {
		t.Error("IsKnownCode(E_NOPE) = true")
	}
}
