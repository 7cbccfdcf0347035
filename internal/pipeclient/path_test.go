package pipeclient

import "testing"

func TestNormalizePathTranslatesForwardSlashes(t *testing.T) {
	got := NormalizePath(`//./pipe/test`)
	want := `\\.\pipe\test`
	if got != want {
		t.Fatalf("NormalizePath(%q) = %q, want %q", `//./pipe/test`, got, want)
	}
}

func TestNormalizePathLeavesBackslashSpellingAlone(t *testing.T) {
	in := `\\.\pipe\test`
	if got := NormalizePath(in); got != in {
		t.Fatalf("NormalizePath(%q) = %q, want unchanged", in, got)
	}
}

func TestNormalizePathIsIdempotent(t *testing.T) {
	inputs := []string{
		`//./pipe/test`,
		`\\.\pipe\test`,
		`\\othercomp\pipe\name`,
		`//othercomp/pipe/name`,
	}
	for _, in := range inputs {
		once := NormalizePath(in)
		twice := NormalizePath(once)
		if once != twice {
			t.Fatalf("NormalizePath not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}
