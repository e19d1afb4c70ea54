package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks

// Watcher reports batches of changed files below a root directory.
type Watcher interface {
	// Watch blocks until ctx is canceled, calling onChange with each debounced batch
	// of changed paths. Paths below any of the ignored directories are not reported.
	Watch(ctx context.Context, root string, ignore []string, onChange func(paths []string)) error
}
