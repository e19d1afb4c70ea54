package domain

// Project is a loaded configuration: where it lives and the targets it declares.
type Project struct {
	// Root is the directory holding the configuration file. It is the default project directory.
	Root string
	// BuildDir and CacheDir are absolute. They default to DefaultBuildDir and DefaultCacheDir below Root.
	BuildDir string
	CacheDir string
	Graph    *Graph
}
