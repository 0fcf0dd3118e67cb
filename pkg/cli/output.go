package cli

import (
	"encoding/json"
	"io"
)

// writeJSON emits indented JSON with edge ids like "a->b" left unescaped
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
