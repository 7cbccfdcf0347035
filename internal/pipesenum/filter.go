// Package pipesenum lists active Windows named pipes and filters them by
// glob pattern, for the auxiliary list-pipes tool; the relay never calls
// into this package.
package pipesenum

import "github.com/gobwas/glob"

// Filter narrows names to those matching pattern. An empty pattern means
// no filtering at all. pattern supports the glob wildcards `*` and `?`.
func Filter(names []string, pattern string) ([]string, error) {
	if pattern == "" {
		return names, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		if g.Match(name) {
			out = append(out, name)
		}
	}
	return out, nil
}
