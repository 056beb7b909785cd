package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name   string
		sha    string
		expect string
	}{
		{"full sha", "0123456789abcdef0123456789abcdef01234567", "0123456"},
		{"exact length", "abc1234", "abc1234"},
		{"short", "abc", "abc"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expect, Abbreviate(tt.sha))
		})
	}
}

func TestCommit_ShortMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		expect  string
	}{
		{"single line", "fix: parser", "fix: parser"},
		{"multi line", "feat: add stamp\n\nLonger body.\n", "feat: add stamp"},
		{"leading newline", "\nsubject\nbody", "subject"},
		{"trailing whitespace", "subject  \n", "subject"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Commit{Message: tt.message}
			require.Equal(t, tt.expect, c.ShortMessage())
		})
	}
}

func TestCommit_ShortSha(t *testing.T) {
	c := Commit{Sha: "0123456789abcdef"}
	require.Equal(t, "0123456", c.ShortSha())
}
