package pipeclient

import "strings"

// NormalizePath folds the `//./pipe/X` spelling into `\\.\pipe\X`, tolerating
// both ways of writing a local pipe name. It is idempotent:
// NormalizePath(NormalizePath(x)) == NormalizePath(x).
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, "/", `\`)
}
