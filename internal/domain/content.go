package domain

import (
	"encoding/json"
	"strings"
)

type PartKind string

const PartText PartKind = "text"

// Part es un segmento de contenido. Solo PartText se interpreta; cualquier otro tipo
// se conserva como JSON crudo.
type Part struct {
	Kind PartKind
	Text string
	Raw  json.RawMessage
}

func TextPart(text string) Part {
	return Part{Kind: PartText, Text: text}
}

// UnmarshalJSON nunca falla: un segmento que no se puede leer queda como tipo desconocido.
func (p *Part) UnmarshalJSON(data []byte) error {
	*p = Part{Raw: append(json.RawMessage(nil), data...)}

	var head struct {
		Type PartKind        `json:"type"`
		Text json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil
	}
	p.Kind = head.Type
	if p.Kind != PartText {
		return nil
	}

	var text string
	if err := json.Unmarshal(head.Text, &text); err != nil {
		// {"type":"text"} sin texto string no es un segmento de texto valido.
		p.Kind = ""
		return nil
	}
	p.Text = text
	return nil
}

func (p Part) MarshalJSON() ([]byte, error) {
	if p.Kind == PartText {
		return json.Marshal(struct {
			Type PartKind `json:"type"`
			Text string   `json:"text"`
		}{Type: PartText, Text: p.Text})
	}
	if len(p.Raw) > 0 && json.Valid(p.Raw) {
		return p.Raw, nil
	}
	return json.Marshal(struct {
		Type PartKind `json:"type"`
	}{Type: p.Kind})
}

// ExtractText concatena en orden los segmentos de texto e ignora el resto.
func ExtractText(parts []Part) string {
	var sb strings.Builder
	for _, p := range parts {
		switch p.Kind {
		case PartText:
			sb.WriteString(p.Text)
		default:
		}
	}
	return sb.String()
}
