//go:build windows

package main

import "github.com/iainh/baton/internal/pipesenum"

func enumerate() ([]string, error) {
	return pipesenum.Enumerate()
}
