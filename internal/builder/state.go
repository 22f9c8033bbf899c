package builder

import (
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/content"
	"github.com/web-inv/sitebuilder/internal/render"
)

// Listener is called with a snapshot of the document after every change.
type Listener func(sections []content.Section)

// State owns the document being edited in one session. Every operation is
// atomic; unknown ids and invalid indices are silently ignored.
type State struct {
	mu        sync.Mutex
	sections  []content.Section
	selected  string
	template  *catalog.Template
	rng       *rand.Rand
	newID     func() string
	listeners map[int]Listener
	nextSub   int
}

// Option configures a State.
type Option func(*State)

// WithRand sets the random source used by OptimizeAll and ApplyTemplate.
func WithRand(r *rand.Rand) Option {
	return func(s *State) { s.rng = r }
}

// WithIDFunc sets the generator for new section ids.
func WithIDFunc(f func() string) Option {
	return func(s *State) { s.newID = f }
}

// New creates a State holding a copy of initial.
func New(initial []content.Section, opts ...Option) *State {
	s := &State{
		sections:  content.CloneSections(initial),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newID:     func() string { return uuid.New().String() },
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDefault creates a State holding the default starter page.
func NewDefault(opts ...Option) *State {
	return New(DefaultSections(), opts...)
}

// Sections returns a deep copy of the document.
func (s *State) Sections() []content.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return content.CloneSections(s.sections)
}

// Document returns the page as a custom export document.
func (s *State) Document() render.Document {
	return render.Custom(s.Sections())
}

// Len returns the number of sections.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sections)
}

// Get returns a copy of the section with the given id.
func (s *State) Get(id string) (content.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.sections[i].Clone(), true
	}
	return content.Section{}, false
}

// Selected returns the id of the selected section, or "".
func (s *State) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select marks the section with the given id as selected. Unknown ids
// clear the selection.
func (s *State) Select(id string) {
	s.mu.Lock()
	if s.indexOf(id) >= 0 {
		s.selected = id
	} else {
		s.selected = ""
	}
	s.mu.Unlock()
}

// Template returns the catalog template the document was last reset from,
// if any.
func (s *State) Template() (catalog.Template, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.template == nil {
		return catalog.Template{}, false
	}
	return s.template.Clone(), true
}

// AddSection appends a new section of the given kind and selects it.
func (s *State) AddSection(kind content.Kind) content.Section {
	s.mu.Lock()
	sec := content.Section{
		ID:      s.uniqueID(),
		Name:    content.BlockName(kind),
		Content: content.DefaultContent(kind),
		Status:  content.StatusNeedsWork,
		Score:   50,
	}
	s.sections = append(s.sections, sec)
	s.selected = sec.ID
	s.mu.Unlock()

	s.notify()
	return sec.Clone()
}

// RemoveSection deletes the section with the given id.
func (s *State) RemoveSection(id string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.sections = append(s.sections[:i:i], s.sections[i+1:]...)
	if s.selected == id {
		s.selected = ""
	}
	s.mu.Unlock()

	s.notify()
}

// Reorder moves the section at index from to index to.
func (s *State) Reorder(from, to int) {
	s.mu.Lock()
	if from == to || from < 0 || to < 0 || from >= len(s.sections) || to >= len(s.sections) {
		s.mu.Unlock()
		return
	}
	s.sections = Move(s.sections, from, to)
	s.mu.Unlock()

	s.notify()
}

// MoveSection moves the section with id onto the position currently held
// by the section with overID, the way a drag-and-drop ends.
func (s *State) MoveSection(id, overID string) {
	s.mu.Lock()
	from, to := s.indexOf(id), s.indexOf(overID)
	s.mu.Unlock()
	if from < 0 || to < 0 {
		return
	}
	s.Reorder(from, to)
}

// EditContent merges partial into the section's content and marks it as
// needing work. The score is left untouched.
func (s *State) EditContent(id string, partial content.Fields) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	sec := &s.sections[i]
	sec.Content = content.Merge(sec.Content, partial)
	sec.Status = content.StatusNeedsWork
	s.mu.Unlock()

	s.notify()
}

// Rename changes the human label of a section.
func (s *State) Rename(id, name string) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.sections[i].Name = name
	s.mu.Unlock()

	s.notify()
}

// OptimizeAll marks every section optimized and bumps each score by a
// random amount in [10, 30), capped at 100. This is a simulation.
func (s *State) OptimizeAll() {
	s.mu.Lock()
	for i := range s.sections {
		sec := &s.sections[i]
		sec.Status = content.StatusOptimized
		sec.Score = max(sec.Score, min(100, sec.Score+10+s.rng.IntN(20)))
	}
	s.mu.Unlock()

	s.notify()
}

// ApplyTemplate replaces the document with a copy of t's sections. Each
// copy gets a fresh id, status optimized and a score in [85, 100).
func (s *State) ApplyTemplate(t catalog.Template) {
	s.mu.Lock()
	sections := content.CloneSections(t.Sections)
	s.sections = s.sections[:0:0]
	for _, sec := range sections {
		sec.ID = s.uniqueID()
		sec.Status = content.StatusOptimized
		sec.Score = 85 + s.rng.IntN(15)
		s.sections = append(s.sections, sec)
	}
	s.selected = ""
	tmpl := t.Clone()
	tmpl.Sections = nil
	s.template = &tmpl
	s.mu.Unlock()

	s.notify()
}

// Reset replaces the document with a copy of sections, keeping their ids.
func (s *State) Reset(sections []content.Section) {
	s.mu.Lock()
	s.sections = content.CloneSections(sections)
	s.selected = ""
	s.template = nil
	s.mu.Unlock()

	s.notify()
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *State) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *State) notify() {
	s.mu.Lock()
	if len(s.listeners) == 0 {
		s.mu.Unlock()
		return
	}
	snapshot := content.CloneSections(s.sections)
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(content.CloneSections(snapshot))
	}
}

// indexOf must be called with mu held.
func (s *State) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, sec := range s.sections {
		if sec.ID == id {
			return i
		}
	}
	return -1
}

// uniqueID must be called with mu held. It retries on collision so a
// custom generator cannot break id uniqueness.
func (s *State) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}
