package main

import (
	"fmt"

	"github.com/metavr/dashauth/internal/dashauth/service"
	"github.com/metavr/dashauth/pkg/jwtx"
	"github.com/urfave/cli/v2"
)

func handshakeMint(c *cli.Context) error {
	sessions, err := sessionService(c)
	if err != nil {
		return err
	}

	// Issuing never touches the ledger, only Exchange does.
	handshakes := &service.HandshakeService{Sessions: sessions}

	token, id, err := handshakes.Issue(
		c.Context,
		c.String(flagUser),
		c.String(flagEmail),
		jwtx.Role(c.String(flagRole)),
		c.Bool(flagRememberMe),
		c.Duration(flagTTL),
	)
	if err != nil {
		return fmt.Errorf("error minting handshake: %w", err)
	}

	fmt.Fprintln(c.App.ErrWriter, "handshake id:", id)
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
