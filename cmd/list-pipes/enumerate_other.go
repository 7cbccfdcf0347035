//go:build !windows

package main

import "errors"

func enumerate() ([]string, error) {
	return nil, errors.New("list-pipes is Windows-only (build for windows to run)")
}
