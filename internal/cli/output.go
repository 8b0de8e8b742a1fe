package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// SplitResult is the split command's outcome.
type SplitResult struct {
	Marathon string `json:"marathon"`
	Year     int    `json:"year"`
	Runners  int    `json:"runners"`
	Bib      int    `json:"bib"`
}

// WriteSplit writes the result in the specified format. Text output is the
// boundary bib alone, for use in shell pipelines.
func WriteSplit(w io.Writer, result *SplitResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case FormatText:
		_, err := fmt.Fprintln(w, result.Bib)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
