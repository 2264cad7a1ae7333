package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/metavr/dashauth/pkg/cryptox"
	"github.com/urfave/cli/v2"
)

func secretGenerate(c *cli.Context) error {
	secret, err := cryptox.GenerateToken(cryptox.SecretSize)
	if err != nil {
		return fmt.Errorf("error generating secret: %w", err)
	}
	fmt.Fprintln(c.App.Writer, secret)
	return nil
}

func keysGenerateRSA(c *cli.Context) error {
	pair, err := cryptox.GenerateRSAKeyPair(c.Int(flagBits))
	if err != nil {
		return err
	}

	dir := c.String(flagOutDir)
	if dir == "" {
		fmt.Fprintf(c.App.Writer, "%s\n%s", pair.PrivatePEM, pair.PublicPEM)
		return nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("error creating %s: %w", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "private.pem"), pair.PrivatePEM, 0o600); err != nil {
		return fmt.Errorf("error writing private key: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "public.pem"), pair.PublicPEM, 0o644); err != nil {
		return fmt.Errorf("error writing public key: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Wrote %s and %s.\n",
		filepath.Join(dir, "private.pem"), filepath.Join(dir, "public.pem"))
	return nil
}
