package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/opt"
)

// Builder defaults.
const (
	DefaultMajor      int64 = 0
	DefaultMinor      int64 = 1
	DefaultPatch      int64 = 0
	DefaultPreRelease       = "SNAPSHOT"
	DefaultMetaData         = ""
)

var identifierRegex = regexp.MustCompile(`^[0-9A-Za-z.-]+$`)

// MinDate is the earliest reference date a Builder accepts.
var MinDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Builder is a mutable version configuration. Every setter validates its
// input and leaves the builder unchanged on error, so Build cannot fail.
// A calendar format, when set, takes precedence over the numeric value of
// the same component.
type Builder struct {
	major       int64
	minor       int64
	patch       int64
	preRelease  string
	metadata    string
	date        time.Time
	majorFormat CalendarFormat
	minorFormat CalendarFormat
	patchFormat CalendarFormat
}

// NewBuilder returns a Builder with defaults 0.1.0-SNAPSHOT and today's
// UTC date as the reference date.
func NewBuilder() *Builder {
	return &Builder{
		major:      DefaultMajor,
		minor:      DefaultMinor,
		patch:      DefaultPatch,
		preRelease: DefaultPreRelease,
		metadata:   DefaultMetaData,
		date:       civilDate(time.Now().UTC()),
	}
}

// SetMajor sets the numeric major component. It fails with
// ErrInvalidArgument when n is negative.
func (b *Builder) SetMajor(n int64) error {
	if err := checkNonNegative("major", n); err != nil {
		return err
	}
	b.major = n
	return nil
}

// SetMinor sets the numeric minor component.
func (b *Builder) SetMinor(n int64) error {
	if err := checkNonNegative("minor", n); err != nil {
		return err
	}
	b.minor = n
	return nil
}

// SetPatch sets the numeric patch component.
func (b *Builder) SetPatch(n int64) error {
	if err := checkNonNegative("patch", n); err != nil {
		return err
	}
	b.patch = n
	return nil
}

// SetPreRelease sets the pre-release identifier. It must be a non-empty
// run of [0-9A-Za-z.-].
func (b *Builder) SetPreRelease(s string) error {
	if err := checkIdentifier("pre-release", s); err != nil {
		return err
	}
	b.preRelease = s
	return nil
}

// SetMetaData sets the build metadata identifier, validated like
// SetPreRelease.
func (b *Builder) SetMetaData(s string) error {
	if err := checkIdentifier("metadata", s); err != nil {
		return err
	}
	b.metadata = s
	return nil
}

// SetDate sets the reference date for calendar formats. Only the calendar
// date in d's location is kept.
func (b *Builder) SetDate(d time.Time) error {
	date := civilDate(d)
	if date.Before(MinDate) {
		return fmt.Errorf("%w: date must be after 1999-12-31, got %s", ErrInvalidArgument, date.Format(time.DateOnly))
	}
	b.date = date
	return nil
}

// SetMajorFormat derives major from the reference date using a calendar
// specifier such as "YYYY" or "0Y". Unknown specifiers fail with
// ErrUnsupportedFormat.
func (b *Builder) SetMajorFormat(f string) error {
	return setFormat(&b.majorFormat, f)
}

// SetMinorFormat is SetMajorFormat for the minor component.
func (b *Builder) SetMinorFormat(f string) error {
	return setFormat(&b.minorFormat, f)
}

// SetPatchFormat is SetMajorFormat for the patch component.
func (b *Builder) SetPatchFormat(f string) error {
	return setFormat(&b.patchFormat, f)
}

// Date returns the reference date.
func (b *Builder) Date() time.Time {
	return b.date
}

// Build resolves every component and returns the version.
func (b *Builder) Build() SemanticVersion {
	preRelease := b.preRelease
	if isBlank(preRelease) {
		preRelease = DefaultPreRelease
	}
	metadata := b.metadata
	if isBlank(metadata) {
		metadata = DefaultMetaData
	}
	return SemanticVersion{
		major:      b.component(b.majorFormat, b.major),
		minor:      b.component(b.minorFormat, b.minor),
		patch:      b.component(b.patchFormat, b.patch),
		preRelease: opt.Of(preRelease),
		metadata:   opt.Of(metadata),
	}
}

func (b *Builder) component(format CalendarFormat, n int64) string {
	if resolve, ok := calendarResolvers[format]; ok {
		return resolve(b.date)
	}
	return strconv.FormatInt(n, 10)
}

func setFormat(dst *CalendarFormat, s string) error {
	f, err := ParseCalendarFormat(s)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func checkNonNegative(name string, n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: %s must be greater than or equal to zero, got %d", ErrInvalidArgument, name, n)
	}
	return nil
}

func checkIdentifier(name, s string) error {
	if !identifierRegex.MatchString(s) {
		return fmt.Errorf("%w: %s %q does not match %s", ErrInvalidArgument, name, s, identifierRegex)
	}
	return nil
}

func civilDate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
