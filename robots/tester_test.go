package robots

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/toolkit/validation"
)

func TestTest(t *testing.T) {
	tests := []struct {
		name    string
		agent   string
		url     string
		allowed bool
	}{
		{"root allowed", "*", "https://example.com/", true},
		{"admin blocked", "*", "https://example.com/admin/users", false},
		{"private blocked", "", "https://example.com/private/", false},
		{"other path allowed", "Bingbot", "https://example.com/blog/post", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := Test(SampleRobotsTxt, tt.agent, tt.url)
			require.NoError(t, err)
			require.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestTestValidation(t *testing.T) {
	_, err := Test("  ", "*", "https://example.com/")
	require.True(t, validation.Is(err))

	_, err = Test(SampleRobotsTxt, "*", "")
	require.True(t, validation.Is(err))

	_, err = Test(SampleRobotsTxt, "*", "/relative/path")
	require.True(t, validation.Is(err))

	_, err = Test(SampleRobotsTxt, "*", "ftp://example.com/file")
	require.True(t, validation.Is(err))
}

func TestLocate(t *testing.T) {
	loc, err := Locate("https://example.com/blog/post?page=2")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/robots.txt", loc)

	_, err = Locate("not a url")
	require.True(t, validation.Is(err))
}
