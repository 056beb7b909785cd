// Package output renders version-info records into structured config
// encodings and prints version variables.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/semver"
	"github.com/MyCarrier-DevOps/go-gitstamp/internal/versioninfo"
)

// Formatter renders a VersionInfo in one encoding. Fields that are absent
// on the record are never emitted.
type Formatter interface {
	// Name is the encoding name accepted by Lookup, e.g. "TOML".
	Name() string
	// Extension is the default file extension, without the dot.
	Extension() string
	// Format renders the record.
	Format(info versioninfo.VersionInfo) ([]byte, error)
}

// Encoding names.
const (
	TOML  = "TOML"
	YAML  = "YAML"
	JSON  = "JSON"
	HOCON = "HOCON"
)

// DefaultFormatter is the encoding used when none is configured.
const DefaultFormatter = TOML

var formatters = map[string]Formatter{
	TOML:  TOMLFormatter{},
	YAML:  YAMLFormatter{},
	JSON:  JSONFormatter{},
	HOCON: HOCONFormatter{},
}

// Lookup returns the formatter for an encoding name, ignoring case.
func Lookup(name string) (Formatter, error) {
	f, ok := formatters[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: formatter %q (expected one of %s)",
			semver.ErrUnsupportedFormat, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the supported encoding names.
func Names() []string {
	return []string{TOML, YAML, JSON, HOCON}
}

// isoInstant renders t as an ISO-8601 instant in UTC.
func isoInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// record is the string-typed field set shared by the YAML, JSON and HOCON
// encodings. Nil fields are absent.
type record struct {
	Version         string
	Branch          *string
	CommitID        *string
	CommitIDAbbrev  *string
	CommitMessage   *string
	CommitTime      *string
	CommitUserName  *string
	CommitUserEmail *string
	BuildNumber     *int64
	Dirty           *bool
	Host            *string
}

func newRecord(info versioninfo.VersionInfo) record {
	r := record{
		Version:         info.Version(),
		Branch:          info.Branch().Ptr(),
		CommitID:        info.CommitID().Ptr(),
		CommitIDAbbrev:  info.CommitIDAbbrev().Ptr(),
		CommitMessage:   info.CommitMessage().Ptr(),
		CommitUserName:  info.CommitUserName().Ptr(),
		CommitUserEmail: info.CommitUserEmail().Ptr(),
		BuildNumber:     info.BuildNumber().Ptr(),
		Dirty:           info.Dirty().Ptr(),
		Host:            info.Host().Ptr(),
	}
	if t, ok := info.CommitTime().Get(); ok {
		s := isoInstant(t)
		r.CommitTime = &s
	}
	return r
}
