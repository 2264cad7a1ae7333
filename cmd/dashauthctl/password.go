package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/metavr/dashauth/pkg/cryptox"
	"github.com/urfave/cli/v2"
)

func passwordGenerate(c *cli.Context) error {
	password, err := cryptox.GenerateSecurePassword()
	if err != nil {
		return fmt.Errorf("error generating password: %w", err)
	}
	fmt.Fprintln(c.App.Writer, password)
	return nil
}

func passwordHash(c *cli.Context) error {
	password, err := requireArg(c, 0, "PASSWORD")
	if err != nil {
		return err
	}

	if report := cryptox.ValidatePasswordStrength(password); !report.Valid && !c.Bool(flagForce) {
		return fmt.Errorf("password is too weak (use --%s to hash anyway):\n  %s",
			flagForce, strings.Join(report.Errors, "\n  "))
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	fmt.Fprintln(c.App.Writer, hash)
	return nil
}

func passwordCheck(c *cli.Context) error {
	password, err := requireArg(c, 0, "PASSWORD")
	if err != nil {
		return err
	}
	hash, err := requireArg(c, 1, "HASH")
	if err != nil {
		return err
	}

	if !cryptox.VerifyPassword(password, hash) {
		return errors.New("password does not match")
	}
	fmt.Fprintln(c.App.Writer, "Password matches.")
	return nil
}

func passwordValidate(c *cli.Context) error {
	password, err := requireArg(c, 0, "PASSWORD")
	if err != nil {
		return err
	}

	report := cryptox.ValidatePasswordStrength(password)
	if report.Valid {
		fmt.Fprintln(c.App.Writer, "Password is strong enough.")
		return nil
	}
	for _, msg := range report.Errors {
		fmt.Fprintf(c.App.Writer, "- %s\n", msg)
	}
	return errors.New("password is too weak")
}

func requireArg(c *cli.Context, i int, name string) (string, error) {
	if c.Args().Len() <= i || c.Args().Get(i) == "" {
		return "", errors.New(name + " is a required argument")
	}
	return c.Args().Get(i), nil
}
