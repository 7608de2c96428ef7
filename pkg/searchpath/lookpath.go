package searchpath

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned (wrapped in an *exec.Error) when no executable
// with the requested name exists in any directory of the search path.
var ErrNotFound = exec.ErrNotFound

// defaultPathExt is used on Windows when PATHEXT is unset.
const defaultPathExt = ".com;.exe;.bat;.cmd"

// LookPath searches for an executable named file in the directories of the
// given search path value. If file contains a path separator, it is checked
// directly and the search path is not consulted. On Windows the extensions
// listed in the PATHEXT variable of the current process are tried as well,
// see LookPathExt.
//
// Unlike exec.LookPath, the search path of the current process is never read,
// which allows resolving a tool against a search path that only the child
// process will see.
//
// A match found through an empty or "." element of the search path is
// returned as an explicitly relative path ("./file"), so that starting it
// never triggers another lookup.
func LookPath(file, pathValue string) (string, error) {
	return LookPathExt(file, pathValue, os.Getenv("PATHEXT"))
}

// LookPathExt is LookPath with the Windows executable extensions given
// explicitly, in PATHEXT format. pathExt is ignored on other systems and
// defaults to ".com;.exe;.bat;.cmd" when empty.
func LookPathExt(file, pathValue, pathExt string) (string, error) {
	exts := executableExtensions(pathExt)

	if strings.ContainsRune(file, '/') || strings.ContainsRune(file, filepath.Separator) {
		path, err := findExecutable(file, exts)
		if err != nil {
			return "", &exec.Error{Name: file, Err: err}
		}
		return path, nil
	}

	for _, dir := range Split(pathValue) {
		path, err := findExecutable(join(dir, file), exts)
		if err == nil {
			return path, nil
		}
	}

	return "", &exec.Error{Name: file, Err: ErrNotFound}
}

// join is filepath.Join, except that the result always contains a
// separator. exec.Command resolves bare names on the search path of the
// current process.
func join(dir, file string) string {
	path := filepath.Join(dir, file)
	if !strings.ContainsRune(path, filepath.Separator) {
		path = "." + string(filepath.Separator) + path
	}

	return path
}

func executableExtensions(pathExt string) []string {
	if !caseInsensitive {
		return nil
	}

	if pathExt == "" {
		pathExt = defaultPathExt
	}

	var exts []string
	for _, ext := range strings.Split(strings.ToLower(pathExt), ";") {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}

	return exts
}

func findExecutable(path string, exts []string) (string, error) {
	if len(exts) == 0 {
		return path, checkExecutable(path, true)
	}

	if hasExt(path, exts) {
		if err := checkExecutable(path, false); err == nil {
			return path, nil
		}
	}

	for _, ext := range exts {
		if err := checkExecutable(path+ext, false); err == nil {
			return path + ext, nil
		}
	}

	return "", ErrNotFound
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if e == ext {
			return true
		}
	}

	return false
}

func checkExecutable(path string, needModeBits bool) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}

	mode := info.Mode()
	if mode.IsDir() {
		return fs.ErrPermission
	}
	if needModeBits && mode&0o111 == 0 {
		return fs.ErrPermission
	}

	return nil
}
