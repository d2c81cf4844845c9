package runtime

import "path/filepath"

// parentDir returns the parent directory of absPath, or "" if absPath has
// no parent worth creating (root or current directory).
func parentDir(absPath string) string {
	dir := filepath.Dir(absPath)
	if dir == "." || dir == string(filepath.Separator) {
		return ""
	}
	return dir
}
