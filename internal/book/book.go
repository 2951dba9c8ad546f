// Package book holds the drafted plan of a run: a Book is the collection of
// candidate Chapters produced by expanding every step's technique choices,
// and a Chapter is one concrete ordered assignment of a technique to each
// step.
package book

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Placed is one slot of a chapter: the step and the technique chosen for it.
type Placed struct {
	Step      string
	Technique string
}

// Chapter is one runnable pipeline: an ordered sequence of placed
// techniques. Chapters within a Book share nothing at apply time; each one
// works on its own clone of the dataset.
type Chapter struct {
	Index int
	Name  string
	Steps []Placed
}

// String renders the chapter as "step:technique > step:technique ...".
func (c *Chapter) String() string {
	parts := make([]string, len(c.Steps))
	for i, p := range c.Steps {
		parts[i] = p.Step + ":" + p.Technique
	}
	return strings.Join(parts, " > ")
}

// Book is the full set of chapters for one run, plus the run identity used
// for folder naming and provenance.
type Book struct {
	Name     string
	RunID    uuid.UUID
	Seed     int64
	Chapters []*Chapter
}

// New creates an empty Book with a fresh run identifier.
func New(name string, seed int64) *Book {
	return &Book{
		Name:  name,
		RunID: uuid.New(),
		Seed:  seed,
	}
}

// Add appends a chapter, assigning its index and default name.
func (b *Book) Add(steps []Placed) *Chapter {
	chapter := &Chapter{
		Index: len(b.Chapters),
		Name:  fmt.Sprintf("chapter_%02d", len(b.Chapters)),
		Steps: steps,
	}
	b.Chapters = append(b.Chapters, chapter)
	return chapter
}

// Len returns the number of chapters.
func (b *Book) Len() int {
	return len(b.Chapters)
}
