package formats

import (
	"context"
	"io"

	"github.com/questbank/qmlbank/internal/i18n"
	"github.com/questbank/qmlbank/internal/question"
	"github.com/questbank/qmlbank/internal/templvars"
)

// Importer parses a format-specific stream into question models.
type Importer interface {
	Import(ctx context.Context, r io.Reader) (*Result, error)
}

// Result is one batch of imported questions. Notices collect the
// user-visible, non-fatal messages emitted while importing; Skipped
// counts the questions dropped from the batch, which is less than the
// notice count when purely informational notices were emitted.
type Result struct {
	Questions []question.Question
	Notices   []string
	Skipped   int
}

// Options carries the shared read-only collaborators an importer needs.
type Options struct {
	Vars     *templvars.Store
	Messages *i18n.Catalog
}

// Factory builds a format importer bound to the given collaborators.
type Factory func(Options) Importer

// Registry of importers by format key (e.g. "qml").
var registry = map[string]Factory{}

// Register a format factory. Call from init() in subpackages.
func Register(format string, f Factory) { registry[format] = f }

// Lookup returns a registered factory for a format.
func Lookup(format string) (Factory, bool) { f, ok := registry[format]; return f, ok }
