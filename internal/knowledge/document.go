package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document es el registro inmutable de datos del portfolio, guardado como JSON compacto.
type Document struct {
	raw []byte
}

// NewDocument valida y compacta un JSON.
func NewDocument(data []byte) (Document, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return Document{}, fmt.Errorf("compact knowledge json: %w", err)
	}
	return Document{raw: buf.Bytes()}, nil
}

// JSON devuelve la serializacion literal del documento.
func (d Document) JSON() []byte {
	out := make([]byte, len(d.raw))
	copy(out, d.raw)
	return out
}

func (d Document) String() string {
	return string(d.raw)
}

func (d Document) IsZero() bool {
	return len(d.raw) == 0
}

// Subject intenta obtener el nombre de la persona descrita (personal.name o name).
func (d Document) Subject() string {
	var probe struct {
		Name     string `json:"name"`
		Personal struct {
			Name string `json:"name"`
		} `json:"personal"`
	}
	if err := json.Unmarshal(d.raw, &probe); err != nil {
		return ""
	}
	if n := strings.TrimSpace(probe.Personal.Name); n != "" {
		return n
	}
	return strings.TrimSpace(probe.Name)
}

// LoadFile lee un documento JSON o YAML.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read knowledge file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return fromYAML(data)
	default:
		return NewDocument(data)
	}
}

func fromYAML(data []byte) (Document, error) {
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return Document{}, fmt.Errorf("parse knowledge yaml: %w", err)
	}
	if value == nil {
		return Document{}, fmt.Errorf("parse knowledge yaml: empty document")
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return Document{}, fmt.Errorf("encode knowledge yaml as json: %w", err)
	}
	return NewDocument(encoded)
}

// Source entrega el documento a quien lo necesite por request.
type Source interface {
	Document(ctx context.Context) (Document, error)
}

// Static comparte un documento cargado al arrancar; es de solo lectura y no necesita locks.
type Static struct {
	doc Document
}

func NewStatic(doc Document) *Static {
	return &Static{doc: doc}
}

func (s *Static) Document(context.Context) (Document, error) {
	if s == nil || s.doc.IsZero() {
		return Document{}, fmt.Errorf("knowledge document not loaded")
	}
	return s.doc, nil
}

// FileSource relee el archivo en cada llamada.
type FileSource struct {
	Path string
}

func (s FileSource) Document(ctx context.Context) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	return LoadFile(s.Path)
}
