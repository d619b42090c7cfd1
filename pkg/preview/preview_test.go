package preview

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"plain", "  hello world  ", "hello world"},
		{"fenced code removed", "before\n```go\nfmt.Println()\n```\nafter", "before after"},
		{"inline code removed", "use `go test` often", "use often"},
		{"html removed", "<p>Hello <b>there</b></p>", "Hello there"},
		{"control chars removed", "a\x00b\x07c", "abc"},
		{"newlines collapsed", "line one\r\nline two\n\nline three", "line one line two line three"},
		{"nbsp collapsed", "a  b", "a b"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clean(tc.content))
		})
	}
}

func TestClean_Truncates(t *testing.T) {
	got := Clean(strings.Repeat("é", 150))
	assert.Equal(t, 100, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.True(t, utf8.ValidString(got))

	exact := strings.Repeat("x", 100)
	assert.Equal(t, exact, Clean(exact))
}

func TestHead(t *testing.T) {
	assert.Equal(t, "short...", Head("short"))
	assert.Equal(t, strings.Repeat("ü", 100)+"...", Head(strings.Repeat("ü", 120)))
}

func TestSnippet(t *testing.T) {
	t.Run("match near start has no leading ellipsis", func(t *testing.T) {
		content := "Needle in a haystack"
		assert.Equal(t, content, Snippet(content, "needle"))
	})

	t.Run("window around a later match", func(t *testing.T) {
		content := strings.Repeat("a", 80) + "KEY" + strings.Repeat("b", 200)
		got := Snippet(content, "key")

		assert.True(t, strings.HasPrefix(got, "..."))
		assert.True(t, strings.HasSuffix(got, "..."))
		inner := strings.TrimSuffix(strings.TrimPrefix(got, "..."), "...")
		assert.Equal(t, strings.Repeat("a", 50)+"KEY"+strings.Repeat("b", 50), inner)
	})

	t.Run("window reaching the end has no trailing ellipsis", func(t *testing.T) {
		content := strings.Repeat("a", 60) + "key" + "tail"
		assert.Equal(t, "..."+strings.Repeat("a", 50)+"keytail", Snippet(content, "KEY"))
	})

	t.Run("multibyte text stays valid", func(t *testing.T) {
		content := strings.Repeat("日", 70) + "本" + strings.Repeat("語", 150)
		got := Snippet(content, "本")
		assert.True(t, utf8.ValidString(got))
		assert.Contains(t, got, "本")
	})

	t.Run("no match falls back to head", func(t *testing.T) {
		assert.Equal(t, "abc...", Snippet("abc", "zzz"))
	})
}
