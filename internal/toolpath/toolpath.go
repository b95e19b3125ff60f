// Package toolpath locates the idb automation bridge executable.
package toolpath

import (
	"os"
	"path/filepath"
)

// EnvVar overrides discovery when set.
const EnvVar = "IDB_PATH"

// DefaultName is used when no candidate exists and the executable is
// expected on PATH.
const DefaultName = "idb"

// Source records how a path was resolved.
type Source string

const (
	SourceFlag      Source = "flag"
	SourceEnv       Source = "env"
	SourceCandidate Source = "candidate"
	SourcePATH      Source = "path"
)

// Resolution is the result of Locate.
type Resolution struct {
	Path   string `yaml:"path"   json:"path"`
	Source Source `yaml:"source" json:"source"`
}

// Locator resolves the bridge path. The zero value is not usable; see New.
type Locator struct {
	Getenv     func(string) string
	Exists     func(string) bool
	Candidates []string
}

// New returns a Locator backed by the real environment and filesystem.
func New() *Locator {
	home, _ := os.UserHomeDir()
	return &Locator{
		Getenv:     os.Getenv,
		Exists:     isExecutableFile,
		Candidates: DefaultCandidates(home),
	}
}

// DefaultCandidates lists well-known install locations in probe order.
func DefaultCandidates(home string) []string {
	candidates := []string{
		"/opt/homebrew/bin/idb",
		"/usr/local/bin/idb",
	}
	if home != "" {
		candidates = append(candidates,
			filepath.Join(home, ".local", "bin", "idb"),
			filepath.Join(home, "Library", "Python", "3.12", "bin", "idb"),
			filepath.Join(home, "Library", "Python", "3.11", "bin", "idb"),
			filepath.Join(home, "Library", "Python", "3.10", "bin", "idb"),
			filepath.Join(home, "Library", "Python", "3.9", "bin", "idb"),
		)
	}
	return candidates
}

// Locate checks the environment override, then each candidate, and finally
// falls back to the bare executable name.
func (l *Locator) Locate() Resolution {
	if l.Getenv != nil {
		if p := l.Getenv(EnvVar); p != "" {
			return Resolution{Path: p, Source: SourceEnv}
		}
	}
	if l.Exists != nil {
		for _, c := range l.Candidates {
			if l.Exists(c) {
				return Resolution{Path: c, Source: SourceCandidate}
			}
		}
	}
	return Resolution{Path: DefaultName, Source: SourcePATH}
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}
