//go:build !windows

package main

import (
	"errors"

	"github.com/iainh/baton/internal/config"
)

func dispatch(_ config.Config) error {
	return errors.New("baton is Windows-only (build for windows to run)")
}
