package prompt

import (
	"fmt"
	"strings"

	"shamba-ai/backend/internal/model"
)

// Assembler turns raw retrieved passages into a bounded, prompt-safe context
// block. The input contexts are never modified: sanitization and truncation
// apply only to the text placed in the prompt, while the caller keeps the
// originals for persistence.
type Assembler struct {
	sanitizer *Sanitizer
	charLimit int
}

// NewAssembler creates an Assembler. charLimit is the per-passage character
// budget, independent of how many passages were retrieved.
func NewAssembler(sanitizer *Sanitizer, charLimit int) *Assembler {
	return &Assembler{sanitizer: sanitizer, charLimit: charLimit}
}

// Assemble concatenates the sanitized, truncated passages in their retrieval
// order, labelling each with its rank and source document id.
func (a *Assembler) Assemble(contexts []model.RetrievedContext) string {
	var b strings.Builder
	for i, ctx := range contexts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		text := a.sanitizer.Apply(truncate(ctx.Text, a.charLimit))
		fmt.Fprintf(&b, "Source %d (%s):\n%s", i+1, ctx.ID, text)
	}
	return b.String()
}

// truncate keeps the start of the passage and drops the tail, since lead
// sentences carry most of the relevance. Cuts on a rune boundary.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
