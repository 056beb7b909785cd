package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/versioninfo"
)

// HOCONFormatter renders kebab-case keys as a flat HOCON object, one
// "key = value" assignment per line.
type HOCONFormatter struct{}

func (HOCONFormatter) Name() string      { return HOCON }
func (HOCONFormatter) Extension() string { return "conf" }

func (HOCONFormatter) Format(info versioninfo.VersionInfo) ([]byte, error) {
	r := newRecord(info)
	w := hoconWriter{}

	w.str("version", &r.Version)
	w.str("branch", r.Branch)
	w.str("commit-id", r.CommitID)
	w.str("commit-id-abbrev", r.CommitIDAbbrev)
	w.str("commit-message", r.CommitMessage)
	w.str("commit-time", r.CommitTime)
	w.str("commit-user-name", r.CommitUserName)
	w.str("commit-user-email", r.CommitUserEmail)
	if r.BuildNumber != nil {
		w.raw("build-number", strconv.FormatInt(*r.BuildNumber, 10))
	}
	if r.Dirty != nil {
		w.raw("dirty", strconv.FormatBool(*r.Dirty))
	}
	w.str("host", r.Host)

	if w.err != nil {
		return nil, fmt.Errorf("encoding HOCON: %w", w.err)
	}
	return w.buf.Bytes(), nil
}

type hoconWriter struct {
	buf bytes.Buffer
	err error
}

// str writes a quoted string. HOCON quoted strings use JSON escaping.
func (w *hoconWriter) str(key string, value *string) {
	if value == nil || w.err != nil {
		return
	}
	quoted, err := encodeJSON(*value, "")
	if err != nil {
		w.err = err
		return
	}
	w.raw(key, string(bytes.TrimRight(quoted, "\n")))
}

func (w *hoconWriter) raw(key, value string) {
	fmt.Fprintf(&w.buf, "%s = %s\n", key, value)
}
