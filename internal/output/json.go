package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/versioninfo"
)

// JSONFormatter renders camelCase keys, indented with two spaces.
type JSONFormatter struct{}

type jsonRecord struct {
	Version         string  `json:"version"`
	Branch          *string `json:"branch,omitempty"`
	CommitID        *string `json:"commitId,omitempty"`
	CommitIDAbbrev  *string `json:"commitIdAbbrev,omitempty"`
	CommitMessage   *string `json:"commitMessage,omitempty"`
	CommitTime      *string `json:"commitTime,omitempty"`
	CommitUserName  *string `json:"commitUserName,omitempty"`
	CommitUserEmail *string `json:"commitUserEmail,omitempty"`
	BuildNumber     *int64  `json:"buildNumber,omitempty"`
	Dirty           *bool   `json:"dirty,omitempty"`
	Host            *string `json:"host,omitempty"`
}

func (JSONFormatter) Name() string      { return JSON }
func (JSONFormatter) Extension() string { return "json" }

func (JSONFormatter) Format(info versioninfo.VersionInfo) ([]byte, error) {
	data, err := encodeJSON(jsonRecord(newRecord(info)), "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return data, nil
}

// WriteJSON writes all variables as pretty-printed JSON to the writer.
func WriteJSON(w io.Writer, variables map[string]string) error {
	data, err := encodeJSON(variables, "  ")
	if err != nil {
		return fmt.Errorf("marshaling variables to JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	return nil
}

// encodeJSON encodes v followed by a newline, leaving <, > and & as is.
func encodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
