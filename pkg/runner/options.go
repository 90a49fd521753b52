// Package runner discovers expression sources and checks them concurrently.
package runner

import "github.com/yaklabco/exprcst/pkg/config"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files or directories.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match globs. If empty, the process working directory is used.
	WorkingDir string

	// Extensions are the file extensions (with leading dot) to collect.
	// Defaults to config.DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are patterns, relative to WorkingDir, for files or
	// directories to skip.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means one per CPU.
	Jobs int
}

// OptionsFromConfig builds Options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, workDir string, paths []string) Options {
	return Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   cfg.AllExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
