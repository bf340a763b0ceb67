// Package validate rejects bad user input before any model call is made.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	NameMinLen    = 3
	NameMaxLen    = 100
	PremiseMinLen = 20
	PremiseMaxLen = 2000
	MinChapters   = 3
	MaxChapters   = 50
	MaxThemes     = 10
	MaxStyles     = 5
)

const forbiddenNameChars = `<>:"/\|?*`

// Error reports a rejected input. The message is shown to the caller as-is.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func errf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Name checks a project name against length and filesystem-hostile characters.
func Name(name string) error {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < NameMinLen || n > NameMaxLen {
		return errf("name", "project name must be between %d and %d characters", NameMinLen, NameMaxLen)
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return errf("name", "project name may not contain any of %s", forbiddenNameChars)
	}
	return nil
}

// SanitizeName maps a validated name onto a directory-safe slug.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case strings.ContainsRune(forbiddenNameChars, r):
			b.WriteRune('_')
		case unicode.IsSpace(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	out = strings.Trim(out, "_")
	if utf8.RuneCountInString(out) > NameMaxLen {
		out = string([]rune(out)[:NameMaxLen])
	}
	return out
}

// Premise checks the story premise is substantial enough to outline from.
func Premise(premise string) error {
	premise = strings.TrimSpace(premise)
	n := utf8.RuneCountInString(premise)
	if n < PremiseMinLen {
		return errf("premise", "premise must be at least %d characters", PremiseMinLen)
	}
	if n > PremiseMaxLen {
		return errf("premise", "premise must be at most %d characters", PremiseMaxLen)
	}
	if len(strings.Fields(premise)) < 10 {
		return errf("premise", "premise must contain at least 10 words")
	}
	return nil
}

func ChapterCount(n int) error {
	if n < MinChapters || n > MaxChapters {
		return errf("chapters", "chapter count must be between %d and %d", MinChapters, MaxChapters)
	}
	return nil
}

// Themes checks count and per-item length.
func Themes(themes []string) error {
	if len(themes) == 0 {
		return errf("themes", "at least one theme is required")
	}
	if len(themes) > MaxThemes {
		return errf("themes", "at most %d themes are allowed", MaxThemes)
	}
	for _, t := range themes {
		n := utf8.RuneCountInString(strings.TrimSpace(t))
		if n < 3 || n > 50 {
			return errf("themes", "each theme must be between 3 and 50 characters")
		}
	}
	return nil
}

// SanitizeThemes trims and capitalizes each theme.
func SanitizeThemes(themes []string) []string {
	out := make([]string, 0, len(themes))
	for _, t := range themes {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		r := []rune(t)
		r[0] = unicode.ToUpper(r[0])
		out = append(out, string(r))
	}
	return out
}

func AuthorStyles(styles []string) error {
	if len(styles) == 0 {
		return errf("author_styles", "at least one author style is required")
	}
	if len(styles) > MaxStyles {
		return errf("author_styles", "at most %d author styles are allowed", MaxStyles)
	}
	for _, s := range styles {
		if strings.TrimSpace(s) == "" {
			return errf("author_styles", "author styles may not be blank")
		}
	}
	return nil
}
