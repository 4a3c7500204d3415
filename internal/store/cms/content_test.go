package cms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedContent(t *testing.T) {
	t.Parallel()

	content, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, content.Hero.Title)
	require.NotEmpty(t, content.Features)
	require.NotEmpty(t, content.About.Body)
}

func TestRenderMarkdownConvertsHeadingsAndEmphasis(t *testing.T) {
	t.Parallel()

	html, err := RenderMarkdown("## Wash smart\n\nUse *lukewarm* water.")
	require.NoError(t, err)
	require.Contains(t, string(html), "<h2")
	require.Contains(t, string(html), "<em>lukewarm</em>")
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	t.Parallel()

	html, err := RenderMarkdown("Hello <script>alert('x')</script> world")
	require.NoError(t, err)
	require.NotContains(t, strings.ToLower(string(html)), "<script")
}

func TestRenderMarkdownStripsEventHandlers(t *testing.T) {
	t.Parallel()

	html, err := RenderMarkdown(`<img src="x" onerror="alert(1)">`)
	require.NoError(t, err)
	require.NotContains(t, string(html), "onerror")
}
