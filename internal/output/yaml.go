package output

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/versioninfo"
)

// YAMLFormatter renders camelCase keys in block style.
type YAMLFormatter struct{}

type yamlRecord struct {
	Version         string  `yaml:"version"`
	Branch          *string `yaml:"branch,omitempty"`
	CommitID        *string `yaml:"commitId,omitempty"`
	CommitIDAbbrev  *string `yaml:"commitIdAbbrev,omitempty"`
	CommitMessage   *string `yaml:"commitMessage,omitempty"`
	CommitTime      *string `yaml:"commitTime,omitempty"`
	CommitUserName  *string `yaml:"commitUserName,omitempty"`
	CommitUserEmail *string `yaml:"commitUserEmail,omitempty"`
	BuildNumber     *int64  `yaml:"buildNumber,omitempty"`
	Dirty           *bool   `yaml:"dirty,omitempty"`
	Host            *string `yaml:"host,omitempty"`
}

func (YAMLFormatter) Name() string      { return YAML }
func (YAMLFormatter) Extension() string { return "yaml" }

func (YAMLFormatter) Format(info versioninfo.VersionInfo) ([]byte, error) {
	r := newRecord(info)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlRecord(r)); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}
