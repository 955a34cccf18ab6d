// Package toolkit runs the SEO tools and records how often each is used.
package toolkit

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/seo-optimizer/toolkit/metatags"
	"github.com/seo-optimizer/toolkit/robots"
	"github.com/seo-optimizer/toolkit/schema"
	"github.com/seo-optimizer/toolkit/stats"
	"github.com/seo-optimizer/toolkit/validation"
)

// Toolkit runs the robots.txt, meta tag and schema tools.
type Toolkit struct {
	schema          *schema.Builder
	stats           *stats.Storage
	logger          *zap.Logger
	retainMonths    int
	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
	stopped         chan struct{}
}

// Option configures a Toolkit.
type Option func(*options)

type options struct {
	now             func() time.Time
	logger          *zap.Logger
	retainMonths    int
	cleanupInterval time.Duration
}

// WithClock sets the clock used for schema date placeholders.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger for background statistics work.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRetention keeps usage statistics for the given number of months,
// pruning older months every interval.
func WithRetention(months int, interval time.Duration) Option {
	return func(o *options) {
		o.retainMonths = months
		o.cleanupInterval = interval
	}
}

// New creates a Toolkit whose usage statistics live in dataDir.
func New(dataDir string, opts ...Option) (*Toolkit, error) {
	o := options{retainMonths: 12, cleanupInterval: time.Hour}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.retainMonths < 1 || o.cleanupInterval <= 0 {
		return nil, fmt.Errorf("invalid retention: %d months every %s", o.retainMonths, o.cleanupInterval)
	}

	statsStorage, err := stats.NewStorage(dataDir, o.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats storage: %w", err)
	}

	t := &Toolkit{
		schema:          schema.NewBuilder(o.now),
		stats:           statsStorage,
		logger:          o.logger,
		retainMonths:    o.retainMonths,
		cleanupInterval: o.cleanupInterval,
		stop:            make(chan struct{}),
		stopped:         make(chan struct{}),
	}

	// Prune once at startup so history loaded from disk is bounded.
	t.cleanup()
	go t.periodicCleanup()

	return t, nil
}

// periodicCleanup prunes old usage months until Shutdown.
func (t *Toolkit) periodicCleanup() {
	defer close(t.stopped)

	ticker := time.NewTicker(t.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.cleanup()
		case <-t.stop:
			return
		}
	}
}

func (t *Toolkit) cleanup() {
	t.stats.Cleanup(t.retainMonths)
	t.logger.Debug("pruned usage statistics",
		zap.Int("retain_months", t.retainMonths),
		zap.Strings("months", t.stats.GetAllMonths()),
	)
}

// record counts a run of tool. Only validation errors count as rejected.
func (t *Toolkit) record(tool stats.Tool, err error) {
	t.stats.Record(tool, validation.Is(err))
}

// AnalyzeRobots classifies a robots.txt document.
func (t *Toolkit) AnalyzeRobots(text string) (*RobotsReport, error) {
	report, err := robots.Analyze(text)
	t.record(stats.ToolRobots, err)
	if err != nil {
		return nil, err
	}
	return &RobotsReport{
		Report:  report,
		Valid:   report.Summary.Valid(),
		Message: report.Summary.Message(),
	}, nil
}

// TestRobots checks whether userAgent may crawl rawURL under text.
func (t *Toolkit) TestRobots(text, userAgent, rawURL string) (*RobotsTestResult, error) {
	res, err := testRobots(text, userAgent, rawURL)
	t.record(stats.ToolRobots, err)
	return res, err
}

func testRobots(text, userAgent, rawURL string) (*RobotsTestResult, error) {
	allowed, err := robots.Test(text, userAgent, rawURL)
	if err != nil {
		return nil, err
	}
	loc, err := robots.Locate(rawURL)
	if err != nil {
		return nil, err
	}
	if userAgent = strings.TrimSpace(userAgent); userAgent == "" {
		userAgent = "*"
	}
	return &RobotsTestResult{URL: rawURL, UserAgent: userAgent, Allowed: allowed, RobotsURL: loc}, nil
}

// ComposeMeta composes and grades a title and description.
func (t *Toolkit) ComposeMeta(title, description string, keywords []string) (*MetaReport, error) {
	res, err := metatags.Compose(title, description, keywords)
	t.record(stats.ToolMeta, err)
	if err != nil {
		return nil, err
	}
	return metaReport(res), nil
}

// ComposeMetaFromHTML composes tags seeded from an existing HTML page. Extra
// keywords are used when the page declares none.
func (t *Toolkit) ComposeMetaFromHTML(r io.Reader, keywords []string) (*MetaReport, error) {
	src, err := metatags.Extract(r)
	if err != nil {
		t.record(stats.ToolMeta, err)
		return nil, err
	}
	if len(src.Keywords) == 0 {
		src.Keywords = keywords
	}
	if src.Title == "" {
		err := validation.New("html", "page has no <title> to build meta tags from")
		t.record(stats.ToolMeta, err)
		return nil, err
	}
	return t.ComposeMeta(src.Title, src.Description, src.Keywords)
}

func metaReport(res *metatags.Result) *MetaReport {
	return &MetaReport{
		Title: TagAnalysis{
			Text:   res.Title,
			Length: utf8.RuneCountInString(res.Title),
			Limit:  metatags.TitleLimit,
			Status: metatags.TitleStatus(res.Title),
		},
		Description: TagAnalysis{
			Text:   res.Description,
			Length: utf8.RuneCountInString(res.Description),
			Limit:  metatags.DescriptionLimit,
			Status: metatags.DescriptionStatus(res.Description),
		},
		Recommendations: metatags.Recommendations(res),
	}
}

// BuildSchema builds the JSON-LD object for kind.
func (t *Toolkit) BuildSchema(kind string, fields schema.Fields) (*SchemaReport, error) {
	report, err := t.buildSchema(kind, fields)
	t.record(stats.ToolSchema, err)
	return report, err
}

func (t *Toolkit) buildSchema(kind string, fields schema.Fields) (*SchemaReport, error) {
	k, err := schema.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	obj, err := t.schema.Build(k, fields)
	if err != nil {
		return nil, err
	}
	compact, err := schema.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode %s schema: %w", k, err)
	}
	pretty, err := schema.MarshalIndent(obj)
	if err != nil {
		return nil, fmt.Errorf("encode %s schema: %w", k, err)
	}
	return &SchemaReport{
		Kind:           k,
		Object:         compact,
		JSON:           string(pretty),
		RichResultsURL: schema.RichResultsURL(string(pretty)),
		ManualEdit:     schema.NeedsManualEdit(k),
	}, nil
}

// Usage returns this month's tool usage.
func (t *Toolkit) Usage() stats.MonthlyStats {
	return t.stats.GetCurrentStats()
}

// Months lists the months with recorded usage, newest first.
func (t *Toolkit) Months() []string {
	return t.stats.GetAllMonths()
}

// MonthlyUsage returns the usage recorded for a YYYY-MM month. The bool is
// false when nothing was recorded that month.
func (t *Toolkit) MonthlyUsage(month string) (stats.MonthlyStats, bool, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return stats.MonthlyStats{}, false, validation.New("month", "must be formatted as YYYY-MM")
	}
	usage, ok := t.stats.GetMonthlyStats(month)
	return usage, ok, nil
}

// Shutdown stops the cleanup loop and flushes usage statistics to disk.
func (t *Toolkit) Shutdown() error {
	if t == nil {
		return nil
	}
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.stopped

	if err := t.stats.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown stats storage: %w", err)
	}
	return nil
}
