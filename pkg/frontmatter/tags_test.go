package frontmatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "basic list",
			content: "---\ntags: Go, Notes , go\n---\nbody",
			want:    []string{"go", "notes"},
		},
		{
			name:    "no front matter",
			content: "tags: go\n",
			want:    nil,
		},
		{
			name:    "front matter not at start",
			content: "intro\n---\ntags: go\n---\n",
			want:    nil,
		},
		{
			name:    "unterminated block",
			content: "---\ntags: go\n",
			want:    nil,
		},
		{
			name:    "tags line among other keys",
			content: "---\ntitle: x\ntags: work-log, ideas!\nauthor: me\n---\n",
			want:    []string{"work-log", "ideas"},
		},
		{
			name:    "first closing delimiter wins",
			content: "---\ntitle: x\n---\ntags: late\n---\n",
			want:    nil,
		},
		{
			name:    "crlf line endings",
			content: "---\r\ntags: a, b\r\n---\r\n",
			want:    []string{"a", "b"},
		},
		{
			name:    "empty and symbol-only entries dropped",
			content: "---\ntags: , ###, --x--,  two   words \n---\n",
			want:    []string{"x", "two words"},
		},
		{
			name:    "unicode letters kept",
			content: "---\ntags: Café, Ünïcode\n---\n",
			want:    []string{"café", "ünïcode"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractTags(tc.content))
		})
	}
}

func TestExtractTags_LengthLimit(t *testing.T) {
	fifty := strings.Repeat("a", 50)
	content := "---\ntags: " + fifty + ", " + fifty + "b\n---\n"
	assert.Equal(t, []string{fifty}, ExtractTags(content))
}

func TestSanitizeTag(t *testing.T) {
	assert.Equal(t, "hello world", SanitizeTag("  Hello,   World!  "))
	assert.Equal(t, "a-b", SanitizeTag("--a-b--"))
	assert.Equal(t, "", SanitizeTag("@@@"))
	assert.Equal(t, "日本語", SanitizeTag("日本語"))
}

func TestValidTag(t *testing.T) {
	assert.False(t, ValidTag(""))
	assert.True(t, ValidTag(strings.Repeat("é", 50)))
	assert.False(t, ValidTag(strings.Repeat("é", 51)))
}
