package domain

import (
	"encoding/json"
	"testing"
)

func TestEncodeParams(t *testing.T) {
	if got := EncodeParams(nil); got != "[]" {
		t.Errorf("nil params: got %q, want []", got)
	}
	if got := EncodeParams([]Param{}); got != "[]" {
		t.Errorf("empty params: got %q, want []", got)
	}

	encoded := EncodeParams([]Param{{Name: "Base Order Size", Type: ParamNumber}})
	var round []Param
	if err := json.Unmarshal([]byte(encoded), &round); err != nil {
		t.Fatalf("encoded params are not valid JSON: %v", err)
	}
	if len(round) != 1 || round[0].Name != "Base Order Size" || round[0].Type != ParamNumber {
		t.Fatalf("round trip lost data: %v", round)
	}
}

func TestDecodeParamsVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{name: "nil", raw: nil, want: 0},
		{name: "empty string", raw: "", want: 0},
		{name: "empty array string", raw: "[]", want: 0},
		{name: "json string", raw: `[{"name":"Take Profit (%)","type":"percent"}]`, want: 1},
		{name: "malformed json degrades to empty", raw: `{"name": truncat`, want: 0},
		{name: "non json garbage", raw: "not json at all", want: 0},
		{name: "wrong shape", raw: `{"name":"x"}`, want: 0},
		{name: "typed slice passes through", raw: []Param{{Name: "x", Type: ParamText}}, want: 1},
		{name: "generic decoded value", raw: []any{map[string]any{"name": "y", "type": "number"}}, want: 1},
		{name: "number", raw: 42, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeParams(tt.raw)
			if len(got) != tt.want {
				t.Errorf("got %d params, want %d (%v)", len(got), tt.want, got)
			}
			// Decode never returns nil entries with empty names.
			for _, p := range got {
				if p.Name == "" {
					t.Errorf("decoded param with empty name: %v", got)
				}
			}
		})
	}
}

func TestDecodeParamsDefaultsType(t *testing.T) {
	got := DecodeParams(`[{"name":"Custom"}]`)
	if len(got) != 1 {
		t.Fatalf("got %d params", len(got))
	}
	if got[0].Type != ParamNumber {
		t.Errorf("missing type should default to number, got %q", got[0].Type)
	}
}

func TestTemplateForDCA(t *testing.T) {
	want := []string{"Base Order Size", "Safety Order Size", "Max Safety Orders", "Take Profit (%)"}
	got := TemplateFor(BotTypeDCA)
	if len(got) != len(want) {
		t.Fatalf("DCA template has %d params, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("param %d: got %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestTemplateForReturnsCopies(t *testing.T) {
	first := TemplateFor(BotTypeGrid)
	if len(first) == 0 {
		t.Fatal("grid template is empty")
	}
	first[0].Name = "mutated"
	if TemplateFor(BotTypeGrid)[0].Name == "mutated" {
		t.Fatal("templates share backing storage")
	}
}

func TestTemplateForUnknownType(t *testing.T) {
	if got := TemplateFor("Never Heard Of It"); len(got) != 0 {
		t.Errorf("unknown type: got %v, want empty", got)
	}
}
