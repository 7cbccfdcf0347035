//go:build windows

package main

import (
	"io"

	"github.com/iainh/baton/internal/assuan"
	"github.com/iainh/baton/internal/config"
	"github.com/iainh/baton/internal/pipeclient"
	"github.com/iainh/baton/internal/relay"
	"github.com/iainh/baton/internal/winconsole"
	"github.com/iainh/baton/internal/winlog"
)

// dispatch picks the connector named by cfg, wires its reader/writer into
// the relay, and runs it to completion.
func dispatch(cfg config.Config) error {
	if cfg.Bg {
		winconsole.Hide()
	}

	winlog.Debugf("config: %+v", cfg)

	if cfg.Assuan {
		conn, err := assuan.Connect(cfg)
		if err != nil {
			return err
		}
		defer conn.Close()
		return relay.Run(conn, conn, cfg)
	}

	client, err := pipeclient.Connect(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	var reader io.Reader = client
	var writer io.Writer = client
	return relay.Run(reader, writer, cfg)
}
