package output

import (
	"encoding/json"
	"io"

	"github.com/garagon/attrib/internal/types"
)

// JSONFormatter outputs the scan result as an indented JSON document.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, result *types.ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
