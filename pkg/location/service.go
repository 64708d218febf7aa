package location

import (
	"github.com/vango-dev/qszone/pkg/reactive"
	"github.com/vango-dev/qszone/pkg/search"
)

// Service owns the current location of one session.
type Service struct {
	current *reactive.Signal[Snapshot]
}

// NewService starts at initial. A nil initial Search is treated as empty.
func NewService(initial Snapshot) *Service {
	return &Service{
		current: reactive.NewSignal(normalize(initial)).WithEquals(func(a, b Snapshot) bool {
			return false
		}),
	}
}

// Current returns the current location. The returned Search is a copy.
func (s *Service) Current() Snapshot {
	return s.current.Get().Clone()
}

// Path returns the current path.
func (s *Service) Path() string {
	return s.current.Get().Path
}

// Hash returns the current hash, without the leading "#".
func (s *Service) Hash() string {
	return s.current.Get().Hash
}

// Search returns a copy of the current search params.
func (s *Service) Search() *search.Params {
	return s.current.Get().Search.Clone()
}

// Navigate commits next as the current location and then notifies
// navigation-start subscribers. Every call notifies, even when next equals
// the current location.
func (s *Service) Navigate(next Snapshot) {
	s.current.Set(normalize(next))
}

// NavigateURL parses raw with ParseURL and navigates to it.
func (s *Service) NavigateURL(raw string) {
	s.Navigate(ParseURL(raw))
}

// OnNavigationStart subscribes fn to navigations. fn receives a copy of the
// new location.
func (s *Service) OnNavigationStart(fn func(Snapshot)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	return s.current.Subscribe(func(snap Snapshot) {
		fn(snap.Clone())
	})
}

func normalize(s Snapshot) Snapshot {
	s = s.Clone()
	if s.Path == "" {
		s.Path = "/"
	}
	return s
}
