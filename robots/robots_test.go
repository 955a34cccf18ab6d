package robots

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/toolkit/validation"
)

func TestAnalyzeSample(t *testing.T) {
	report, err := Analyze(SampleRobotsTxt)
	require.NoError(t, err)

	require.Equal(t, Summary{
		Comments:    1,
		UserAgents:  2,
		Allows:      2,
		Disallows:   3,
		Sitemaps:    1,
		CrawlDelays: 1,
	}, report.Summary)
	require.True(t, report.Summary.Valid())
	require.Equal(t, "Your robots.txt appears to be valid!", report.Summary.Message())
	require.Len(t, report.Directives, report.Summary.Total())

	lines := make([]int, 0, len(report.Directives))
	for _, d := range report.Directives {
		lines = append(lines, d.Line)
	}
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 8, 9, 10, 12}, lines)

	last := report.Directives[len(report.Directives)-1]
	require.Equal(t, Sitemap, last.Kind)
	require.Equal(t, "References sitemap at: https://example.com/sitemap.xml", last.Note)
}

func TestAnalyzeClassification(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind Kind
		note string
	}{
		{"padded disallow", "  Disallow: /admin/  ", Disallow, "Blocks crawling of: /admin/"},
		{"byte order mark", "\ufeffUser-agent: *", UserAgent, "Defines rules for: *"},
		{"non-breaking space", "\u00a0Allow: /docs\u00a0", Allow, "Allows crawling of: /docs"},
		{"empty disallow", "Disallow:", Disallow, "Empty disallow (allows all)"},
		{"lowercase user agent", "user-agent: Bingbot", UserAgent, "Defines rules for: Bingbot"},
		{"empty user agent", "User-agent:", UserAgent, "Defines rules for: unknown"},
		{"upper allow", "ALLOW: /public", Allow, "Allows crawling of: /public"},
		{"empty allow", "Allow:", Allow, "Allows crawling of: /"},
		{"allow value stops at colon", "Allow: /a:b", Allow, "Allows crawling of: /a"},
		{"sitemap keeps colons", "Sitemap: https://example.com:8080/map.xml", Sitemap, "References sitemap at: https://example.com:8080/map.xml"},
		{"crawl delay", "Crawl-delay: 5", CrawlDelay, "Sets crawl delay to 5 seconds"},
		{"comment", "# hello: world", Comment, ""},
		{"no colon", "Disallow /tmp", Unknown, "Unknown or invalid directive"},
		{"unsupported directive", "Host: example.com", Unknown, "Unknown or invalid directive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Analyze(tt.line)
			require.NoError(t, err)
			require.Len(t, report.Directives, 1)

			d := report.Directives[0]
			require.Equal(t, tt.kind, d.Kind)
			require.Equal(t, tt.note, d.Note)
			require.Equal(t, 1, d.Line)
		})
	}
}

func TestAnalyzeTrimsRawText(t *testing.T) {
	report, err := Analyze("\r\n\t User-agent: *\r\n")
	require.NoError(t, err)
	require.Len(t, report.Directives, 1)
	require.Equal(t, "User-agent: *", report.Directives[0].Text)
	require.Equal(t, 2, report.Directives[0].Line)
}

func TestAnalyzeUnknownLinesAreWarnings(t *testing.T) {
	report, err := Analyze("User-agent: *\nNoindex: /x\nbogus\nDisallow: /y")
	require.NoError(t, err)
	require.Equal(t, 2, report.Summary.Unknown)
	require.False(t, report.Summary.Valid())
	require.Equal(t, "Found 2 potential issue(s) in your robots.txt", report.Summary.Message())
}

func TestAnalyzeStripsByteOrderMark(t *testing.T) {
	report, err := Analyze("\ufeff" + SampleRobotsTxt)
	require.NoError(t, err)
	require.True(t, report.Summary.Valid())
	require.Equal(t, "# Robots.txt for example.com", report.Directives[0].Text)
}

func TestAnalyzeRejectsEmptyDocument(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\t\n", "\ufeff\n"} {
		report, err := Analyze(text)
		require.Nil(t, report)
		require.True(t, validation.Is(err), "input %q", text)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	first, err := Analyze(SampleRobotsTxt)
	require.NoError(t, err)
	second, err := Analyze(SampleRobotsTxt)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
