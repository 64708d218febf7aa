// Package link computes the href of an anchor whose target is "the current
// location, with this query-string fragment merged in".
//
// Compute is the pure recompute. Link wires it to the three triggers that
// can change its result: the fragment expression, navigation, and the
// enclosing zone's override.
//
//	loc := location.NewService(location.ParseURL("/list?page=2"))
//	z := zone.New("results")
//	zone.WatchKeys(z, reactive.NewSignal([]string{"page"}))
//
//	l := link.New(loc, reactive.NewSignal("sort=asc"), link.WithZone(z))
//	defer l.Close()
//	l.Href() // "#/list?sort=asc"
package link

import (
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/qszone/pkg/location"
	"github.com/vango-dev/qszone/pkg/reactive"
	"github.com/vango-dev/qszone/pkg/search"
	"github.com/vango-dev/qszone/pkg/zone"
)

// AttrHref is the attribute name passed to the attribute setter.
const AttrHref = "href"

// Compute merges rawQuery into a copy of snap's search, using z's override
// when it has one, and builds the href. snap is not modified. z may be nil.
func Compute(snap location.Snapshot, rawQuery string, z *zone.Zone) string {
	return ComputeWith(snap, rawQuery, z, search.ParseOptions{})
}

// ComputeWith is Compute with explicit parse options for rawQuery.
func ComputeWith(snap location.Snapshot, rawQuery string, z *zone.Zone, opts search.ParseOptions) string {
	base := snap.Search.Clone()
	z.Merge(base, search.ParseWith(rawQuery, opts))
	return search.Build(snap.Path, base, snap.Hash)
}

// Observer is told about every recompute.
type Observer func(zoneName string, overridden bool, took time.Duration)

// Option configures a Link.
type Option func(*Link)

// WithZone places the link inside z.
func WithZone(z *zone.Zone) Option {
	return func(l *Link) {
		l.zone = z
	}
}

// WithAttrSetter sets the sink that receives each new href, typically an
// element attribute write.
func WithAttrSetter(set func(name, value string)) Option {
	return func(l *Link) {
		l.setAttr = set
	}
}

// WithLogger sets the logger used for recompute tracing.
// If unset, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Link) {
		l.logger = logger
	}
}

// WithObserver registers a recompute observer, used for metrics.
func WithObserver(obs Observer) Option {
	return func(l *Link) {
		l.observer = obs
	}
}

// Link keeps an href up to date.
type Link struct {
	loc   *location.Service
	query *reactive.Signal[string]
	zone  *zone.Zone

	setAttr  func(name, value string)
	logger   *slog.Logger
	observer Observer

	mu   sync.Mutex
	href string

	scope *reactive.Scope
}

// New creates a link, computes its first href and subscribes it to changes
// of query, navigations of loc, and override replacements in the zone.
func New(loc *location.Service, query *reactive.Signal[string], opts ...Option) *Link {
	l := &Link{
		loc:   loc,
		query: query,
		scope: reactive.NewScope(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}

	l.scope.Add(query.Subscribe(func(string) { l.Recompute() }))
	l.scope.Add(loc.OnNavigationStart(func(location.Snapshot) { l.Recompute() }))
	l.scope.Add(l.zone.OnChange(l.Recompute))

	l.Recompute()
	return l
}

// Recompute rebuilds the href from the current inputs and pushes it to the
// attribute setter. It is a no-op after Close.
func (l *Link) Recompute() {
	if l.scope.Disposed() {
		return
	}
	start := time.Now()
	href := Compute(l.loc.Current(), l.query.Get(), l.zone)
	took := time.Since(start)

	l.mu.Lock()
	l.href = href
	l.mu.Unlock()

	l.logger.Debug("href recomputed",
		"zone", l.zone.Name(),
		"overridden", l.zone.HasOverride(),
		"href", href,
	)
	if l.observer != nil {
		l.observer(l.zone.Name(), l.zone.HasOverride(), took)
	}
	if l.setAttr != nil {
		l.setAttr(AttrHref, href)
	}
}

// Href returns the most recently computed href.
func (l *Link) Href() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.href
}

// Zone returns the enclosing zone, or nil.
func (l *Link) Zone() *zone.Zone {
	return l.zone
}

// Close removes all subscriptions. The last href remains readable.
func (l *Link) Close() {
	l.scope.Dispose()
}
