package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	assert.NoError(t, Name("The Glass Orchard"))
	assert.Error(t, Name("ab"))
	assert.Error(t, Name(strings.Repeat("x", 101)))
	assert.Error(t, Name(`tales/of\doom`))
	assert.Error(t, Name("what?"))
}

func TestNameErrorIsTyped(t *testing.T) {
	err := Name("a")
	require.Error(t, err)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, verr.Message, err.Error())
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"The Glass Orchard", "The_Glass_Orchard"},
		{"  spaced   out  ", "spaced_out"},
		{`a/b\c:d`, "a_b_c_d"},
		{"___already__messy___", "already_messy"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeName(tt.in), "input %q", tt.in)
	}
}

func TestSanitizeNameCapsLength(t *testing.T) {
	long := strings.Repeat("a", 300)
	assert.Len(t, SanitizeName(long), NameMaxLen)
}

func TestPremise(t *testing.T) {
	good := "A lighthouse keeper discovers the beam wakes something sleeping under the bay."
	assert.NoError(t, Premise(good))

	assert.Error(t, Premise("too short"), "under minimum length")
	assert.Error(t, Premise(strings.Repeat("verylongword ", 200)), "over maximum length")
	assert.Error(t, Premise("onlysevenwordslongbutover20chars here now yes ok"), "under ten words")
}

func TestChapterCount(t *testing.T) {
	assert.Error(t, ChapterCount(2))
	assert.NoError(t, ChapterCount(3))
	assert.NoError(t, ChapterCount(50))
	assert.Error(t, ChapterCount(51))
}

func TestThemes(t *testing.T) {
	assert.NoError(t, Themes([]string{"Redemption", "Found family"}))
	assert.Error(t, Themes(nil))
	assert.Error(t, Themes([]string{"ok", "no"}), "theme too short")
	assert.Error(t, Themes(make([]string, 11)), "too many themes")
}

func TestSanitizeThemes(t *testing.T) {
	got := SanitizeThemes([]string{" redemption ", "", "found family"})
	assert.Equal(t, []string{"Redemption", "Found family"}, got)
}

func TestAuthorStyles(t *testing.T) {
	assert.NoError(t, AuthorStyles([]string{"Ursula K. Le Guin"}))
	assert.Error(t, AuthorStyles(nil))
	assert.Error(t, AuthorStyles([]string{"a", "b", "c", "d", "e", "f"}))
	assert.Error(t, AuthorStyles([]string{"  "}))
}
