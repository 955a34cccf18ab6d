package logging

import (
	"sort"
	"sync"
	"time"
)

// Traffic collects in-memory request statistics for the running process.
type Traffic struct {
	mutex          sync.RWMutex
	uniqueVisitors map[string]time.Time // IP -> last visit
	routes         map[string]int       // route -> request count
	requests       int
	errors         int
	totalLatency   time.Duration
	devMode        bool
	lastPrune      time.Time
	now            func() time.Time
}

const (
	visitorWindow = 24 * time.Hour
	pruneInterval = time.Hour
)

// NewTraffic returns an empty collector. Route popularity is only reported in
// dev mode.
func NewTraffic(devMode bool) *Traffic {
	return &Traffic{
		uniqueVisitors: make(map[string]time.Time),
		routes:         make(map[string]int),
		devMode:        devMode,
		now:            time.Now,
	}
}

// TrackVisitor records a visit from ip. Visitors outside the 24 hour window
// are dropped at most once per hour.
func (t *Traffic) TrackVisitor(ip string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	now := t.now()
	t.uniqueVisitors[ip] = now

	if now.Sub(t.lastPrune) >= pruneInterval {
		cutoff := now.Add(-visitorWindow)
		for visitor, lastVisit := range t.uniqueVisitors {
			if !lastVisit.After(cutoff) {
				delete(t.uniqueVisitors, visitor)
			}
		}
		t.lastPrune = now
	}
}

// TrackRequest records a tool request and its outcome.
func (t *Traffic) TrackRequest(route string, latency time.Duration, failed bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.requests++
	t.routes[route]++
	t.totalLatency += latency
	if failed {
		t.errors++
	}
}

// RouteCount is one entry of the popular routes list.
type RouteCount struct {
	Route    string `json:"route"`
	Requests int    `json:"requests"`
}

// Snapshot is the reportable view of Traffic.
type Snapshot struct {
	UniqueVisitors24h int          `json:"uniqueVisitors24h"`
	TotalRequests     int          `json:"totalRequests"`
	ErrorRate         float64      `json:"errorRate"`       // percent
	AverageLatency    float64      `json:"averageLoadTime"` // milliseconds
	PopularRoutes     []RouteCount `json:"popularRoutes,omitempty"`
}

// Snapshot returns the current statistics. The top five routes are included
// only in dev mode.
func (t *Traffic) Snapshot() Snapshot {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	snap := Snapshot{TotalRequests: t.requests}

	cutoff := t.now().Add(-visitorWindow)
	for _, lastVisit := range t.uniqueVisitors {
		if lastVisit.After(cutoff) {
			snap.UniqueVisitors24h++
		}
	}

	if t.requests > 0 {
		snap.ErrorRate = float64(t.errors) / float64(t.requests) * 100
		snap.AverageLatency = float64(t.totalLatency.Milliseconds()) / float64(t.requests)
	}

	if t.devMode {
		snap.PopularRoutes = t.popularRoutes(5)
	}
	return snap
}

func (t *Traffic) popularRoutes(n int) []RouteCount {
	routes := make([]RouteCount, 0, len(t.routes))
	for route, count := range t.routes {
		routes = append(routes, RouteCount{Route: route, Requests: count})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Requests != routes[j].Requests {
			return routes[i].Requests > routes[j].Requests
		}
		return routes[i].Route < routes[j].Route
	})
	if len(routes) > n {
		routes = routes[:n]
	}
	return routes
}
