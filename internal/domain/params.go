package domain

import (
	"encoding/json"
	"strings"
)

// ParamType is the value kind of one bot parameter row.
type ParamType string

const (
	ParamNumber  ParamType = "number"
	ParamPercent ParamType = "percent"
	ParamText    ParamType = "text"
	ParamToggle  ParamType = "toggle"
)

// ParamTypes lists the editor's type choices in display order.
var ParamTypes = []ParamType{ParamNumber, ParamPercent, ParamText, ParamToggle}

// Param is one named, typed bot parameter.
type Param struct {
	Name string    `json:"name"`
	Type ParamType `json:"type"`
}

// EncodeParams serializes the parameter list to the JSON string the platform
// stores. An empty list serializes to "[]".
func EncodeParams(params []Param) string {
	if params == nil {
		params = []Param{}
	}
	b, err := json.Marshal(params)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeParams parses stored bot configuration back into a parameter list.
// It accepts a JSON string, a structured array (as produced by a decoded
// response body), or nothing. Malformed configuration degrades to an empty
// list; it never reaches the user as an error.
func DecodeParams(raw any) []Param {
	switch v := raw.(type) {
	case nil:
		return []Param{}
	case []Param:
		if v == nil {
			return []Param{}
		}
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return []Param{}
		}
		var out []Param
		if err := json.Unmarshal([]byte(v), &out); err != nil || out == nil {
			return []Param{}
		}
		return sanitizeParams(out)
	default:
		// Structured payload: round-trip through JSON.
		b, err := json.Marshal(v)
		if err != nil {
			return []Param{}
		}
		var out []Param
		if err := json.Unmarshal(b, &out); err != nil || out == nil {
			return []Param{}
		}
		return sanitizeParams(out)
	}
}

func sanitizeParams(in []Param) []Param {
	out := make([]Param, 0, len(in))
	for _, p := range in {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		if p.Type == "" {
			p.Type = ParamNumber
		}
		out = append(out, p)
	}
	return out
}

// Bot categories offered by the create form.
const (
	BotTypeDCA    = "DCA"
	BotTypeGrid   = "Grid"
	BotTypeSignal = "Signal"
)

// BotTypes lists the category choices in display order.
var BotTypes = []string{BotTypeDCA, BotTypeGrid, BotTypeSignal}

var paramTemplates = map[string][]Param{
	BotTypeDCA: {
		{Name: "Base Order Size", Type: ParamNumber},
		{Name: "Safety Order Size", Type: ParamNumber},
		{Name: "Max Safety Orders", Type: ParamNumber},
		{Name: "Take Profit (%)", Type: ParamPercent},
	},
	BotTypeGrid: {
		{Name: "Lower Price", Type: ParamNumber},
		{Name: "Upper Price", Type: ParamNumber},
		{Name: "Grid Levels", Type: ParamNumber},
		{Name: "Investment", Type: ParamNumber},
	},
	BotTypeSignal: {
		{Name: "Webhook Secret", Type: ParamText},
		{Name: "Order Size", Type: ParamNumber},
		{Name: "Reduce Only", Type: ParamToggle},
	},
}

// TemplateFor returns a copy of the default parameter list for a bot
// category. Used only when a NEW draft's category changes; editing an
// existing bot never re-applies the template.
func TemplateFor(botType string) []Param {
	tpl, ok := paramTemplates[botType]
	if !ok {
		return []Param{}
	}
	out := make([]Param, len(tpl))
	copy(out, tpl)
	return out
}
