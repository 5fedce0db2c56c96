package prompt

import (
	"strings"

	"portfolio-assistant/internal/knowledge"
)

// Composer construye el bloque de instrucciones que se envia como system prompt.
type Composer struct {
	Policy Policy
}

// NewComposer usa DefaultPolicy.
func NewComposer() Composer {
	return Composer{Policy: DefaultPolicy}
}

// Compose arma la politica y la copia literal del documento. Es pura y total.
func (c Composer) Compose(doc knowledge.Document) string {
	policy := c.Policy
	if policy.Persona == "" && len(policy.Rules) == 0 {
		policy = DefaultPolicy
	}

	var sb strings.Builder
	sb.WriteString(policy.Persona)
	sb.WriteString(" Follow these rules strictly:\n")
	for _, r := range policy.Rules {
		sb.WriteString("- ")
		sb.WriteString(r.Text)
		sb.WriteString("\n")
	}
	sb.WriteString("\nSOURCE OF TRUTH (JSON):\n")
	sb.WriteString(doc.String())
	sb.WriteString("\n")
	return sb.String()
}
