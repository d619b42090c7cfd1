// Package preview builds the short plain-text excerpts shown next to notes.
// All lengths are counted in runes.
package preview

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	sourceRunes   = 200
	maxRunes      = 100
	truncatedTo   = 97
	ellipsis      = "..."
	snippetBefore = 50
	snippetAfter  = 100
)

var (
	fencedCode = regexp.MustCompile("```[\\s\\S]*?```")
	inlineCode = regexp.MustCompile("`[^`]*`")
	htmlTag    = regexp.MustCompile(`<[^>]*>`)
	controls   = regexp.MustCompile(`[\x00-\x09\x0B\x0C\x0E-\x1F\x7F]`)
	spaces     = regexp.MustCompile(`\s+`)
)

func runePrefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Clean turns note content into a single line of at most 100 runes.
func Clean(content string) string {
	text := runePrefix(strings.TrimSpace(content), sourceRunes)
	text = strings.ReplaceAll(text, "\r\n", "\n")

	text = fencedCode.ReplaceAllString(text, "")
	text = inlineCode.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "`", "")
	text = htmlTag.ReplaceAllString(text, "")
	text = controls.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = spaces.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}

	if len([]rune(text)) > maxRunes {
		text = string([]rune(text)[:truncatedTo]) + ellipsis
	}
	return text
}

// Head is the first 100 runes of content followed by an ellipsis.
func Head(content string) string {
	return runePrefix(content, maxRunes) + ellipsis
}

// Snippet returns a window of content around the first case-insensitive
// occurrence of query, or Head(content) when there is none.
func Snippet(content, query string) string {
	text := []rune(content)
	needle := []rune(strings.Map(unicode.ToLower, query))
	if len(needle) == 0 {
		return Head(content)
	}

	pos := indexRunes([]rune(strings.Map(unicode.ToLower, content)), needle)
	if pos < 0 {
		return Head(content)
	}

	start := pos - snippetBefore
	if start < 0 {
		start = 0
	}
	end := start + len(needle) + snippetAfter
	if end > len(text) {
		end = len(text)
	}

	snippet := string(text[start:end])
	if start > 0 {
		snippet = ellipsis + snippet
	}
	if end < len(text) {
		snippet += ellipsis
	}
	return snippet
}

func indexRunes(haystack, needle []rune) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
