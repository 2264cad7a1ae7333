package main

import (
	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/metavr/dashauth/pkg/slogx"
	"github.com/urfave/cli/v2"
)

const (
	flagAudience          = "audience"
	flagBits              = "bits"
	flagEmail             = "email"
	flagForce             = "force"
	flagHandshakeAudience = "handshake-audience"
	flagIssuer            = "issuer"
	flagOutDir            = "out-dir"
	flagOutput            = "output"
	flagPublicKey         = "public-key"
	flagRememberMe        = "remember-me"
	flagRole              = "role"
	flagSecret            = "secret"
	flagTTL               = "ttl"
	flagUser              = "user"
)

func cliFlagOutput() cli.Flag {
	return &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage:   "Return output in another format. Supported formats: text, json",
		Value:   "text",
	}
}

// sessionFlags mirror the service's environment so the CLI signs and verifies
// exactly like the deployment it runs next to.
func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagSecret,
			Usage:   "The session secret",
			EnvVars: []string{"SESSION_SECRET"},
		},
		&cli.StringFlag{
			Name:    flagPublicKey,
			Usage:   "PEM public key of a verify-only deployment",
			EnvVars: []string{"SESSION_PUBLIC_KEY"},
		},
		&cli.StringFlag{
			Name:    flagIssuer,
			EnvVars: []string{"SESSION_ISSUER"},
			Value:   sessionx.DefaultIssuer,
		},
		&cli.StringFlag{
			Name:    flagAudience,
			EnvVars: []string{"SESSION_AUDIENCE"},
			Value:   sessionx.DefaultAudience,
		},
		&cli.StringFlag{
			Name:    flagHandshakeAudience,
			EnvVars: []string{"HANDSHAKE_AUDIENCE"},
			Value:   sessionx.DefaultHandshakeAudience,
		},
	}
}

func sessionService(c *cli.Context) (*sessionx.Service, error) {
	return sessionx.New(sessionx.Config{
		Secret:            c.String(flagSecret),
		PublicKeyPEM:      c.String(flagPublicKey),
		Issuer:            c.String(flagIssuer),
		Audience:          c.String(flagAudience),
		HandshakeAudience: c.String(flagHandshakeAudience),
		Logger:            slogx.Discard(),
	})
}
