package shared

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const MaxDescriptionLen = 256

// Link card descriptions are trimmed to whole phrases: phrases starting
// within PhraseStartLimit characters are kept, then dropped from the end
// until the combined text fits TotalDescLimit.
const (
	PhraseStartLimit = 150
	TotalDescLimit   = 200
)

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	rePhrase     = regexp.MustCompile(`[^.!?]+[.!?]?`)
)

func TruncateWithEllipsis(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	// https://stackoverflow.com/a/73939904/7479498
	lastSpaceIx := maxLen
	len := 0
	for i, r := range text {
		if unicode.IsSpace(r) {
			lastSpaceIx = i
		}
		len++
		if len > maxLen {
			return text[:lastSpaceIx] + "…"
		}
	}
	// If here, string is shorter or equal to maxLen
	return text
}

func CollapseWhitespace(text string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
}

// TrimDescription shortens free-form page descriptions without cutting
// mid-sentence. Limits are in characters, not bytes.
func TrimDescription(text string) string {
	normalized := CollapseWhitespace(text)
	if normalized == "" {
		return normalized
	}

	type phrase struct {
		runeStart int
		text      string
	}
	var phrases []phrase
	for _, loc := range rePhrase.FindAllStringIndex(normalized, -1) {
		p := strings.TrimSpace(normalized[loc[0]:loc[1]])
		if p != "" {
			phrases = append(phrases, phrase{utf8.RuneCountInString(normalized[:loc[0]]), p})
		}
	}
	if len(phrases) == 0 {
		return cutRunes(normalized, PhraseStartLimit)
	}

	var selected []string
	for _, p := range phrases {
		if p.runeStart <= PhraseStartLimit {
			selected = append(selected, p.text)
		}
	}
	if len(selected) == 0 {
		return cutRunes(normalized, PhraseStartLimit)
	}

	combined := strings.Join(selected, " ")
	for len(selected) > 1 && utf8.RuneCountInString(combined) > TotalDescLimit {
		selected = selected[:len(selected)-1]
		combined = strings.Join(selected, " ")
	}
	if utf8.RuneCountInString(combined) > TotalDescLimit {
		// A single run-on phrase with no sentence breaks
		combined = cutRunes(combined, PhraseStartLimit)
	}
	return combined
}

func cutRunes(text string, maxRunes int) string {
	count := 0
	for i := range text {
		if count == maxRunes {
			return strings.TrimRight(text[:i], " ")
		}
		count++
	}
	return text
}
