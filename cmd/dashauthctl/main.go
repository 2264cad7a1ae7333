package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\n%s\n\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "dashauthctl"
	app.Usage = "Operator tooling for dashboard sessions"
	app.Commands = []*cli.Command{
		{
			Name:  "password",
			Usage: "Hash, check and generate passwords",
			Subcommands: []*cli.Command{
				{
					Name:   "generate",
					Usage:  "Generate a random password that passes the strength rules",
					Action: passwordGenerate,
				},
				{
					Name:      "hash",
					Usage:     "Print the bcrypt hash of a password",
					ArgsUsage: "PASSWORD",
					Flags: []cli.Flag{
						&cli.BoolFlag{
							Name:  flagForce,
							Usage: "Hash even if the password fails the strength rules",
						},
					},
					Action: passwordHash,
				},
				{
					Name:      "check",
					Usage:     "Check a password against a bcrypt hash",
					ArgsUsage: "PASSWORD HASH",
					Action:    passwordCheck,
				},
				{
					Name:      "validate",
					Usage:     "Report which strength rules a password breaks",
					ArgsUsage: "PASSWORD",
					Action:    passwordValidate,
				},
			},
		},
		{
			Name:  "handshake",
			Usage: "Work with handshake tokens",
			Subcommands: []*cli.Command{
				{
					Name:  "mint",
					Usage: "Mint a handshake token for a user",
					Description: "Only works against a symmetric deployment, the token is " +
						"signed with SESSION_SECRET.",
					Flags: append(sessionFlags(),
						&cli.StringFlag{
							Name:     flagUser,
							Aliases:  []string{"u"},
							Usage:    "The user id",
							Required: true,
						},
						&cli.StringFlag{
							Name:    flagEmail,
							Aliases: []string{"e"},
							Usage:   "The user's email",
						},
						&cli.StringFlag{
							Name:    flagRole,
							Aliases: []string{"r"},
							Usage:   "admin or supervisor",
							Value:   "admin",
						},
						&cli.BoolFlag{
							Name:  flagRememberMe,
							Usage: "Exchange into a 7 day session instead of 12 hours",
						},
						&cli.DurationFlag{
							Name:  flagTTL,
							Usage: "How long the handshake stays valid",
							Value: 60 * time.Second,
						},
					),
					Action: handshakeMint,
				},
			},
		},
		{
			Name:  "token",
			Usage: "Work with session and handshake tokens",
			Subcommands: []*cli.Command{
				{
					Name:      "inspect",
					Usage:     "Decode a token and report whether it verifies",
					ArgsUsage: "TOKEN",
					Flags:     append(sessionFlags(), cliFlagOutput()),
					Action:    tokenInspect,
				},
			},
		},
		{
			Name:  "secret",
			Usage: "Manage signing secrets",
			Subcommands: []*cli.Command{
				{
					Name:   "generate",
					Usage:  "Generate a random value for SESSION_SECRET",
					Action: secretGenerate,
				},
			},
		},
		{
			Name:  "keys",
			Usage: "Manage RS256 key pairs",
			Subcommands: []*cli.Command{
				{
					Name:  "generate-rsa",
					Usage: "Generate an RSA key pair for an RS256 deployment",
					Description: "The private key belongs to the issuing backend. " +
						"Give this service the public key via SESSION_PUBLIC_KEY.",
					Flags: []cli.Flag{
						&cli.IntFlag{
							Name:  flagBits,
							Usage: "RSA modulus size",
							Value: 3072,
						},
						&cli.StringFlag{
							Name:  flagOutDir,
							Usage: "Write private.pem and public.pem here instead of stdout",
						},
					},
					Action: keysGenerateRSA,
				},
			},
		},
	}
	return app
}
