// Package frontmatter derives note tags from a leading front matter block.
//
// Only the "tags:" line of the block is read, as a comma separated list.
// YAML lists, quoting and nested keys are not interpreted.
package frontmatter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const MaxTagLength = 50

var (
	blockPattern = regexp.MustCompile(`(?s)^---\s*\n(.*?)\n---`)
	tagsPattern  = regexp.MustCompile(`(?m)^tags:\s*(.+)$`)

	disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// SanitizeTag keeps letters, digits, whitespace and hyphens, collapses whitespace,
// trims spaces and hyphens from both ends and lowercases the result.
func SanitizeTag(tag string) string {
	tag = disallowedChars.ReplaceAllString(tag, "")
	tag = whitespaceRun.ReplaceAllString(tag, " ")
	tag = strings.Trim(tag, " -")
	return strings.ToLower(tag)
}

// ValidTag reports whether an already sanitised tag may be stored.
func ValidTag(tag string) bool {
	return tag != "" && utf8.RuneCountInString(tag) <= MaxTagLength
}

// ExtractTags returns the sanitised, de-duplicated tags declared in content,
// in order of first appearance. Content without front matter has no tags.
func ExtractTags(content string) []string {
	block := blockPattern.FindStringSubmatch(content)
	if block == nil {
		return nil
	}
	line := tagsPattern.FindStringSubmatch(block[1])
	if line == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, raw := range strings.Split(line[1], ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		tag := SanitizeTag(raw)
		if !ValidTag(tag) {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
