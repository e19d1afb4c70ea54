package ports

//go:generate go run go.uber.org/mock/mockgen -source=file_cache.go -destination=mocks/mock_file_cache.go -package=mocks

// FileHashCache hashes file contents and persists the results in a build directory.
type FileHashCache interface {
	// HashFiles returns the content hash of every given file, keyed by path.
	// Files that are missing or unreadable are left out of the result.
	// A file hashed earlier in the same pass is not read again.
	HashFiles(paths []string) map[string]string

	// Invalidate forgets the hashes computed in this pass for the given paths.
	Invalidate(paths []string)

	// PreviousHashes returns a copy of the hashes loaded from storage.
	PreviousHashes() map[string]string

	// CurrentHashes returns a copy of the hashes computed in this pass.
	CurrentHashes() map[string]string

	// Persist writes the current hashes merged over the previous ones back to storage.
	Persist() error
}

// FileCacheFactory opens the file hash cache stored in a build directory.
type FileCacheFactory interface {
	// Open loads the persisted hashes of buildDir. A missing or outdated table yields an empty cache.
	Open(buildDir string) (FileHashCache, error)

	// Remove deletes the persisted table of buildDir. Removing a missing table is not an error.
	Remove(buildDir string) error
}
