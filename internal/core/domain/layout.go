package domain

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "assemble.yaml"

	// DefaultBuildDir is the build directory used when none is configured, relative to the project.
	DefaultBuildDir = "build"

	// DefaultCacheDir is the cache directory used when none is configured, relative to the project.
	DefaultCacheDir = ".assemble/cache"

	// FileCacheName is the name of the file hash table inside the build directory.
	FileCacheName = ".filecache"

	// FileCacheVersionName is the name of the file holding the hash table format version.
	FileCacheVersionName = ".filecache_version"

	// FileCacheVersion is the current format version of the file hash table.
	// A persisted table with any other version is discarded.
	FileCacheVersion = 1

	// DirPerm is the permission used for directories created by the build system.
	DirPerm = 0o750

	// FilePerm is the permission used for state files written by the build system.
	FilePerm = 0o644
)
