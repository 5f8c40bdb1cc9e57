package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatStates formats a list of saved states as JSON
func (f *Formatter) FormatStates(states []StateDTO) error {
	return f.encode(states)
}

// FormatProxies formats proxy definitions as JSON
func (f *Formatter) FormatProxies(proxies []ProxyDTO) error {
	return f.encode(proxies)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
