package searchpath

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Separator is the platform path list separator, as a string.
const Separator = string(os.PathListSeparator)

// Windows treats environment variable names case-insensitively.
var caseInsensitive = runtime.GOOS == "windows"

// Prepend returns the search path value with dir placed in front of value,
// so that dir takes precedence during lookups. The separator is always
// added, even when value is empty.
func Prepend(dir, value string) string {
	return dir + Separator + value
}

// Split returns the directories of a search path value, in lookup order.
// Empty elements are kept as "." the way the shell interprets them.
func Split(value string) []string {
	dirs := filepath.SplitList(value)
	for i, dir := range dirs {
		if dir == "" {
			dirs[i] = "."
		}
	}

	return dirs
}

func sameName(a, b string) bool {
	if caseInsensitive {
		return strings.EqualFold(a, b)
	}

	return a == b
}

func splitEntry(entry string) (name, value string, ok bool) {
	// Windows keeps per-drive working directories in entries like "=C:=C:\dir",
	// the leading '=' belongs to the name.
	start := 0
	if strings.HasPrefix(entry, "=") {
		start = 1
	}

	i := strings.IndexByte(entry[start:], '=')
	if i == -1 {
		return "", "", false
	}
	i += start

	return entry[:i], entry[i+1:], true
}

// Lookup returns the value of the variable name in environ, a list of
// KEY=VALUE entries as returned by os.Environ. When the variable appears
// more than once the last entry wins, matching os/exec.
func Lookup(environ []string, name string) (string, bool) {
	var (
		value string
		found bool
	)

	for _, entry := range environ {
		key, v, ok := splitEntry(entry)
		if ok && sameName(key, name) {
			value, found = v, true
		}
	}

	return value, found
}

// Replace returns a copy of environ in which the variable name is set to
// value. The first matching entry keeps its position and its original key
// spelling, later duplicates are dropped. If the variable is absent, it is
// appended. environ itself is never modified.
func Replace(environ []string, name, value string) []string {
	out := make([]string, 0, len(environ)+1)
	replaced := false

	for _, entry := range environ {
		key, _, ok := splitEntry(entry)
		if !ok || !sameName(key, name) {
			out = append(out, entry)
			continue
		}

		if replaced {
			continue
		}

		out = append(out, key+"="+value)
		replaced = true
	}

	if !replaced {
		out = append(out, name+"="+value)
	}

	return out
}
