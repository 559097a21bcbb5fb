package model

import "fmt"

// EntryKind tags the variant held by an Entry.
type EntryKind string

const (
	KindStory     EntryKind = "story"
	KindCharacter EntryKind = "character"
)

// ParseEntryKind converts a raw value into an EntryKind.
func ParseEntryKind(raw string) (EntryKind, error) {
	switch EntryKind(raw) {
	case KindStory, KindCharacter:
		return EntryKind(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntryKind, raw)
	}
}

// Entry is a journal card: either a *Story or a *Character.
// The interface is closed; only types in this package implement it.
type Entry interface {
	EntryKind() EntryKind
	EntryID() int64
	Label() string
	Fields() []Field
	isEntry()
}

// Field describes one editable attribute of an entry.
// Options is non-empty for fields restricted to a fixed set of values.
type Field struct {
	Name    string   `json:"name"`
	Value   string   `json:"value"`
	Options []string `json:"options,omitempty"`
}

func (*Story) isEntry()     {}
func (*Character) isEntry() {}

func (s *Story) EntryKind() EntryKind { return KindStory }
func (s *Story) EntryID() int64       { return s.ID }
func (s *Story) Label() string        { return s.Title }

func (s *Story) Fields() []Field {
	options := make([]string, 0, len(StoryStatuses))
	for _, st := range StoryStatuses {
		options = append(options, string(st))
	}
	return []Field{
		{Name: "title", Value: s.Title},
		{Name: "genre", Value: s.Genre},
		{Name: "status", Value: string(s.Status), Options: options},
		{Name: "synopsis", Value: s.Synopsis},
	}
}

func (c *Character) EntryKind() EntryKind { return KindCharacter }
func (c *Character) EntryID() int64       { return c.ID }
func (c *Character) Label() string        { return c.Name }

func (c *Character) Fields() []Field {
	return []Field{
		{Name: "name", Value: c.Name},
		{Name: "description", Value: c.Description},
		{Name: "backstory", Value: c.Backstory},
	}
}

// EntryView is the wire form of an Entry.
type EntryView struct {
	Kind   EntryKind `json:"kind"`
	ID     int64     `json:"id"`
	Label  string    `json:"label"`
	Fields []Field   `json:"fields"`
}

// ViewOf renders an entry for transport.
func ViewOf(e Entry) EntryView {
	return EntryView{Kind: e.EntryKind(), ID: e.EntryID(), Label: e.Label(), Fields: e.Fields()}
}
