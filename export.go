package pokedata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/edgedx/pokedata/codec"
)

// Exporter writes generated results to local files named by category and
// request fingerprint. Output convenience only; nothing reads these back.
type Exporter struct {
	// Dir is the target directory. It must exist.
	Dir string

	// Codec serializes the result; Ext names the file extension.
	Codec codec.Codec[*Result]
	Ext   string
}

// NewJSONExporter returns an Exporter producing <category>_<fp>.json files.
func NewJSONExporter(dir string) Exporter {
	return Exporter{Dir: dir, Codec: codec.JSON[*Result]{}, Ext: "json"}
}

// Write serializes res to Dir and returns the file path.
func (e Exporter) Write(req Request, res *Result) (string, error) {
	if e.Codec == nil {
		return "", fmt.Errorf("pokedata: exporter codec is required")
	}
	b, err := e.Codec.Encode(res)
	if err != nil {
		return "", fmt.Errorf("pokedata: encode dataset: %w", err)
	}
	name := fmt.Sprintf("%s_%s.%s", res.DataType, Fingerprint(req), e.Ext)
	path := filepath.Join(e.Dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("pokedata: write dataset: %w", err)
	}
	return path, nil
}
