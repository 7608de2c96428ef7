package toolchain

import (
	"os"
	"strings"

	"github.com/tmaxmax/paclike/pkg/searchpath"
)

// Info holds some information about a tool found on the host.
type Info struct {
	// Name of the tool.
	Name string
	// Path of the tool's executable.
	Path string
	// Version number of the tool.
	Version string
	// Size of the tool's executable, in bytes.
	Size int64
}

func isValidImplementationName(name string) bool {
	return !strings.ContainsAny(name, string([]rune{os.PathSeparator, os.PathListSeparator}))
}

// StatInfo fills in the Size of info from the executable at info.Path.
// Implementations call it after resolving their executable; a failed
// stat leaves Size at zero.
func StatInfo(info Info) Info {
	if fi, err := os.Stat(info.Path); err == nil {
		info.Size = fi.Size()
	}

	return info
}

// SearchPathVar is the default name of the search path environment variable.
const SearchPathVar = "PATH"

// SearchPath is a search path value together with the name of the
// environment variable it is passed in.
type SearchPath struct {
	// Var is the variable name. Defaults to SearchPathVar.
	Var string
	// Value is the list of directories, joined by the path list separator.
	Value string
}

func (p SearchPath) variable() string {
	if p.Var == "" {
		return SearchPathVar
	}
	return p.Var
}

// Environ returns the environment of the current process with the search
// path variable set to Value, for running tools that depend on libraries
// living next to them.
func (p SearchPath) Environ() []string {
	return searchpath.Replace(os.Environ(), p.variable(), p.Value)
}

// LookPath resolves the executable file on the search path, see
// searchpath.LookPath.
func (p SearchPath) LookPath(file string) (string, error) {
	return searchpath.LookPath(file, p.Value)
}
