package scanner

import "os"

// Well-known file names inside an application directory. A directory is a
// launchable application iff it contains the entry point; the other two
// are optional siblings.
const (
	EntryPointName   = "main.py"
	RequirementsName = "requirements.txt"
	ReadmeName       = "readme.md"
)

// Origin says where an application was discovered.
type Origin string

const (
	// OriginPrimary marks apps found as subdirectories of the managed
	// applications root.
	OriginPrimary Origin = "primary"
	// OriginExternal marks apps found at user-configured external roots.
	OriginExternal Origin = "external"
)

// App represents one discoverable Python sub-application. All paths are
// absolute and immutable once the record is built; records only live for
// the duration of one registry snapshot.
type App struct {
	Identity         string // unique key within a registry snapshot
	Name             string // directory base name
	DisplayName      string // human label, overridable by the caller
	Root             string // application directory
	EntryPoint       string // <root>/main.py, guaranteed to exist at scan time
	RequirementsFile string // <root>/requirements.txt, may not exist
	ReadmeFile       string // <root>/readme.md, may not exist
	Origin           Origin
}

// HasRequirements reports whether the app declares dependencies.
func (a *App) HasRequirements() bool {
	_, err := os.Stat(a.RequirementsFile)
	return err == nil
}

// HasReadme reports whether the app ships documentation.
func (a *App) HasReadme() bool {
	_, err := os.Stat(a.ReadmeFile)
	return err == nil
}
