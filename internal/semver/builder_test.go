package semver

import (
	"testing"
	"time"

	"github.com/MyCarrier-DevOps/go-gitstamp/internal/opt"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Defaults(t *testing.T) {
	v := NewBuilder().Build()
	require.Equal(t, "0.1.0-SNAPSHOT", v.ExtendedString())
	require.Equal(t, "0.1.0", v.String())
	require.Equal(t, opt.Of("SNAPSHOT"), v.PreRelease())
	require.Equal(t, opt.Of(""), v.MetaData())
}

func TestBuilder_DefaultDateIsTodayUTC(t *testing.T) {
	before := time.Now().UTC()
	b := NewBuilder()
	after := time.Now().UTC()

	d := b.Date()
	require.Equal(t, time.UTC, d.Location())
	require.True(t, d.Equal(civilDate(before)) || d.Equal(civilDate(after)))
}

func TestBuilder_ZeroPaddedYearFormat(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{date(2024, time.March, 1), "24"},
		{date(2005, time.March, 1), "05"},
	}
	for _, tt := range tests {
		b := NewBuilder()
		require.NoError(t, b.SetMajorFormat("0Y"))
		require.NoError(t, b.SetDate(tt.date))
		require.Equal(t, tt.want, b.Build().Major())
	}
}

func TestBuilder_CalendarVersion(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetDate(date(2024, time.March, 9)))
	require.NoError(t, b.SetMajorFormat("YYYY"))
	require.NoError(t, b.SetMinorFormat("0M"))
	require.NoError(t, b.SetPatchFormat("DD"))
	require.NoError(t, b.SetPreRelease("rc.1"))
	require.NoError(t, b.SetMetaData("7.abc1234"))

	require.Equal(t, "2024.03.9-rc.1+7.abc1234", b.Build().ExtendedString())
}

func TestBuilder_FormatTakesPrecedence(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetDate(date(2024, time.March, 1)))
	require.NoError(t, b.SetMajor(7))
	require.NoError(t, b.SetMinor(8))
	require.NoError(t, b.SetPatch(9))
	require.NoError(t, b.SetMinorFormat("WW"))

	v := b.Build()
	require.Equal(t, "7", v.Major())
	require.Equal(t, "9", v.Minor())
	require.Equal(t, "9", v.Patch())
}

func TestBuilder_NumericComponents(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetMajor(1))
	require.NoError(t, b.SetMinor(2))
	require.NoError(t, b.SetPatch(0))
	require.NoError(t, b.SetMetaData("3.abc1234.dirty"))
	require.Equal(t, "1.2.0-SNAPSHOT+3.abc1234.dirty", b.Build().ExtendedString())
}

func TestBuilder_RejectsNegativeComponents(t *testing.T) {
	b := NewBuilder()
	require.ErrorIs(t, b.SetMajor(-1), ErrInvalidArgument)
	require.ErrorIs(t, b.SetMinor(-1), ErrInvalidArgument)
	require.ErrorIs(t, b.SetPatch(-1), ErrInvalidArgument)
	require.Equal(t, "0.1.0", b.Build().String())
}

func TestBuilder_RejectsDateBefore2000(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetDate(date(2000, time.January, 1)))
	require.ErrorIs(t, b.SetDate(date(1999, time.December, 31)), ErrInvalidArgument)
	require.Equal(t, date(2000, time.January, 1), b.Date())
}

func TestBuilder_DateKeepsCalendarDayOfLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	b := NewBuilder()
	require.NoError(t, b.SetDate(time.Date(2024, time.March, 1, 2, 0, 0, 0, loc)))
	require.Equal(t, date(2024, time.March, 1), b.Date())
}

func TestBuilder_RejectsInvalidIdentifiers(t *testing.T) {
	tests := []string{"feature/x", "", "a b", "snap_shot", "ü"}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			b := NewBuilder()
			require.ErrorIs(t, b.SetPreRelease(s), ErrInvalidArgument)
			require.ErrorIs(t, b.SetMetaData(s), ErrInvalidArgument)
			require.Equal(t, "0.1.0-SNAPSHOT", b.Build().ExtendedString())
		})
	}
}

func TestBuilder_RejectsUnsupportedFormat(t *testing.T) {
	b := NewBuilder()
	require.ErrorIs(t, b.SetMajorFormat("XX"), ErrUnsupportedFormat)
	require.ErrorIs(t, b.SetMinorFormat("yyyy"), ErrUnsupportedFormat)
	require.ErrorIs(t, b.SetPatchFormat(""), ErrUnsupportedFormat)
	require.Equal(t, "0.1.0", b.Build().String())
}

func TestBuilder_BuildIsRepeatable(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetDate(date(2024, time.March, 1)))
	require.NoError(t, b.SetMajorFormat("YY"))
	first := b.Build()
	require.Equal(t, first, b.Build())

	require.NoError(t, b.SetPreRelease("beta"))
	require.Equal(t, "24.1.0-SNAPSHOT", first.ExtendedString())
	require.Equal(t, "24.1.0-beta", b.Build().ExtendedString())
}

func TestBuilder_RoundTripsThroughParse(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetDate(date(2024, time.March, 1)))
	require.NoError(t, b.SetMajorFormat("0Y"))
	require.NoError(t, b.SetMinorFormat("0M"))
	require.NoError(t, b.SetMetaData("3.abc1234.dirty"))
	v := b.Build()

	parsed, err := Parse(v.ExtendedString())
	require.NoError(t, err)
	require.Equal(t, v, parsed)
}
