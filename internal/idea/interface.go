package idea

import "context"

// Loader is the interface for a format-specific settings front end. A loader
// reads one or more files and translates them into the shared model; it does
// not apply defaults or validate cross-references, which happen once in
// Model.Finalize after every contributing loader has run.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}
