package content

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Section is one visual block of a page. Its position in the enclosing
// slice is its position on the page.
type Section struct {
	ID      string
	Name    string
	Content Content
	Status  Status
	Score   int
}

// Kind returns the section type, taken from its content variant.
func (s Section) Kind() Kind {
	if s.Content == nil {
		return ""
	}
	return s.Content.Kind()
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	if s.Content != nil {
		s.Content = s.Content.Clone()
	}
	return s
}

// CloneSections deep-copies a section list. A nil input yields an empty,
// non-nil slice.
func CloneSections(in []Section) []Section {
	out := make([]Section, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}

// Record is the serialized form of a Section.
type Record struct {
	ID      string `json:"id" yaml:"id" validate:"required"`
	Name    string `json:"name" yaml:"name"`
	Type    Kind   `json:"type" yaml:"type" validate:"required"`
	Status  Status `json:"status,omitempty" yaml:"status,omitempty" validate:"omitempty,oneof=optimized needs-work critical"`
	Score   int    `json:"score" yaml:"score,omitempty" validate:"gte=0,lte=100"`
	Content Fields `json:"content" yaml:"content,omitempty"`
}

// Record flattens s for serialization.
func (s Section) Record() Record {
	r := Record{ID: s.ID, Name: s.Name, Type: s.Kind(), Status: s.Status, Score: s.Score}
	if s.Content != nil {
		r.Content = s.Content.Fields()
	}
	return r
}

// Section rebuilds the typed section.
func (r Record) Section() Section {
	return Section{
		ID:      r.ID,
		Name:    r.Name,
		Content: FromFields(r.Type, r.Content),
		Status:  r.Status,
		Score:   r.Score,
	}
}

func (s Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Record())
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*s = r.Section()
	return nil
}

func (s Section) MarshalYAML() (interface{}, error) {
	return s.Record(), nil
}

func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	var r Record
	if err := node.Decode(&r); err != nil {
		return err
	}
	*s = r.Section()
	return nil
}

var validate = validator.New()

// Validate checks the structural invariants of a single section.
func (s Section) Validate() error {
	if err := validate.Struct(s.Record()); err != nil {
		return fmt.Errorf("section %q: %w", s.ID, err)
	}
	return nil
}

// ValidateSections checks every section and that ids are unique.
func ValidateSections(sections []Section) error {
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}
