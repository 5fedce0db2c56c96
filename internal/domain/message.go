package domain

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message es un turno visible de la conversacion.
type Message struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
	// Streaming solo es true para el mensaje assistant que esta recibiendo deltas.
	Streaming bool `json:"-"`
}

// Text devuelve el texto reconocido del mensaje.
func (m Message) Text() string {
	return ExtractText(m.Parts)
}

// Clone copia el mensaje para que el llamador no comparta el slice de partes.
func (m Message) Clone() Message {
	out := m
	if m.Parts != nil {
		out.Parts = make([]Part, len(m.Parts))
		copy(out.Parts, m.Parts)
	}
	return out
}

// Turn es el par {role, text} que se envia al proveedor.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
