package metatags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const page = `<!doctype html>
<html>
<head>
  <title>  Best Coffee Shops  </title>
  <meta name="description" content="Where to drink &lt;b&gt;great&lt;/b&gt; coffee &amp; tea.">
  <meta name="keywords" content="coffee, espresso , ,tea">
</head>
<body><h1>Coffee</h1></body>
</html>`

func TestExtract(t *testing.T) {
	src, err := Extract(strings.NewReader(page))
	require.NoError(t, err)

	require.Equal(t, "Best Coffee Shops", src.Title)
	require.Equal(t, "Where to drink great coffee & tea.", src.Description)
	require.Equal(t, []string{"coffee", "espresso", "tea"}, src.Keywords)
}

func TestExtractMissingTags(t *testing.T) {
	src, err := Extract(strings.NewReader("<html><body><p>No head</p></body></html>"))
	require.NoError(t, err)
	require.Empty(t, src.Title)
	require.Empty(t, src.Description)
	require.Empty(t, src.Keywords)
}
