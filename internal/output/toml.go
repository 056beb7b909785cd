package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/versioninfo"
)

// TOMLFormatter renders snake_case keys with a native datetime commit time.
type TOMLFormatter struct{}

// Nil pointers are skipped by the encoder.
type tomlRecord struct {
	Version         string     `toml:"version"`
	Branch          *string    `toml:"branch"`
	CommitID        *string    `toml:"commit_id"`
	CommitIDAbbrev  *string    `toml:"commit_id_abbrev"`
	CommitMessage   *string    `toml:"commit_message"`
	CommitTime      *time.Time `toml:"commit_time"`
	CommitUserName  *string    `toml:"commit_user_name"`
	CommitUserEmail *string    `toml:"commit_user_email"`
	BuildNumber     *int64     `toml:"build_number"`
	Dirty           *bool      `toml:"dirty"`
	Host            *string    `toml:"host"`
}

func (TOMLFormatter) Name() string      { return TOML }
func (TOMLFormatter) Extension() string { return "toml" }

func (TOMLFormatter) Format(info versioninfo.VersionInfo) ([]byte, error) {
	rec := tomlRecord{
		Version:         info.Version(),
		Branch:          info.Branch().Ptr(),
		CommitID:        info.CommitID().Ptr(),
		CommitIDAbbrev:  info.CommitIDAbbrev().Ptr(),
		CommitMessage:   info.CommitMessage().Ptr(),
		CommitTime:      info.CommitTime().Ptr(),
		CommitUserName:  info.CommitUserName().Ptr(),
		CommitUserEmail: info.CommitUserEmail().Ptr(),
		BuildNumber:     info.BuildNumber().Ptr(),
		Dirty:           info.Dirty().Ptr(),
		Host:            info.Host().Ptr(),
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, fmt.Errorf("encoding TOML: %w", err)
	}
	return buf.Bytes(), nil
}
