package store

import (
	"context"
	"sort"
	"sync"
)

// DarkClass is the presentation class toggled by the theme.
const DarkClass = "dark"

// Flag is the global presentation switch the UI styles against.
type Flag interface {
	SetDark(dark bool)
}

// DocumentClass is a document-wide class list. The theme adds or removes
// DarkClass; other classes are left alone.
type DocumentClass struct {
	mu      sync.RWMutex
	classes map[string]struct{}
}

// NewDocumentClass returns a class list holding classes.
func NewDocumentClass(classes ...string) *DocumentClass {
	d := &DocumentClass{classes: make(map[string]struct{}, len(classes))}
	for _, c := range classes {
		d.classes[c] = struct{}{}
	}
	return d
}

// SetDark adds or removes DarkClass.
func (d *DocumentClass) SetDark(dark bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if dark {
		d.classes[DarkClass] = struct{}{}
	} else {
		delete(d.classes, DarkClass)
	}
}

// Has reports whether class is set.
func (d *DocumentClass) Has(class string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.classes[class]
	return ok
}

// Classes returns the set classes sorted.
func (d *DocumentClass) Classes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.classes))
	for c := range d.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Theme is the theme state and its persisted snapshot.
type Theme struct {
	IsDark bool `json:"isDark"`
}

// ThemeStore owns the light/dark preference and keeps flag in sync with it.
type ThemeStore struct {
	mu    sync.RWMutex
	theme Theme
	flag  Flag
	rev   uint64
	obs   observers[Theme]
}

// NewThemeStore applies initial to flag immediately so a rehydrated dark
// theme is visible before the first mutation.
func NewThemeStore(initial Theme, flag Flag) *ThemeStore {
	flag.SetDark(initial.IsDark)
	return &ThemeStore{theme: initial, flag: flag}
}

// Subscribe registers fn for every applied mutation.
func (s *ThemeStore) Subscribe(fn Listener[Theme]) func() {
	return s.obs.subscribe(fn)
}

func (s *ThemeStore) set(ctx context.Context, fn func(bool) bool) bool {
	s.mu.Lock()
	s.theme.IsDark = fn(s.theme.IsDark)
	s.flag.SetDark(s.theme.IsDark)
	s.rev++
	change := Change[Theme]{Revision: s.rev, Action: ActionThemeChanged, Subject: "theme", State: s.theme}
	s.mu.Unlock()

	mutationsTotal.WithLabelValues(string(ActionThemeChanged)).Inc()
	s.obs.notify(ctx, change)
	return change.State.IsDark
}

// IsDark reports the current preference.
func (s *ThemeStore) IsDark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme.IsDark
}

// ToggleTheme flips the preference and returns the new value.
func (s *ThemeStore) ToggleTheme(ctx context.Context) bool {
	return s.set(ctx, func(dark bool) bool { return !dark })
}

// SetTheme sets the preference.
func (s *ThemeStore) SetTheme(ctx context.Context, dark bool) {
	s.set(ctx, func(bool) bool { return dark })
}
