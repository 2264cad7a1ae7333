package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/urfave/cli/v2"
)

type inspection struct {
	Kind     string         `json:"kind"` // session, handshake or unknown
	Valid    bool           `json:"valid"`
	Alg      string         `json:"alg,omitempty"`
	Claims   map[string]any `json:"claims,omitempty"`
	Expires  *time.Time     `json:"expires,omitempty"`
	Problems []string       `json:"problems,omitempty"`
}

func tokenInspect(c *cli.Context) error {
	raw, err := requireArg(c, 0, "TOKEN")
	if err != nil {
		return err
	}
	if err := validateOutputFormat(c.String(flagOutput)); err != nil {
		return err
	}

	out := inspection{Kind: "unknown"}

	claims := jwt.MapClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, claims)
	if err != nil {
		out.Problems = append(out.Problems, "not a JWT: "+err.Error())
		return printInspection(c, out)
	}
	out.Alg = parsed.Method.Alg()
	out.Claims = claims
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.Expires = &exp.Time
	}

	sessions, err := sessionService(c)
	if err != nil {
		out.Problems = append(out.Problems, "cannot verify: "+err.Error())
		return printInspection(c, out)
	}

	switch {
	case sessions.VerifySessionToken(raw) != nil:
		out.Kind, out.Valid = "session", true
	case sessions.VerifyHandshakeToken(raw) != nil:
		out.Kind, out.Valid = "handshake", true
	default:
		out.Problems = append(out.Problems,
			"does not verify as a session or handshake with the given key and audiences")
	}

	return printInspection(c, out)
}

func printInspection(c *cli.Context, out inspection) error {
	w := c.App.Writer

	if strings.ToLower(c.String(flagOutput)) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "Kind:    %s\n", out.Kind)
	fmt.Fprintf(w, "Valid:   %t\n", out.Valid)
	if out.Alg != "" {
		fmt.Fprintf(w, "Alg:     %s\n", out.Alg)
	}
	if out.Expires != nil {
		fmt.Fprintf(w, "Expires: %s\n", out.Expires.UTC().Format(time.RFC3339))
	}
	if len(out.Claims) > 0 {
		raw, _ := json.MarshalIndent(out.Claims, "", "  ")
		fmt.Fprintf(w, "Claims:\n%s\n", raw)
	}
	for _, p := range out.Problems {
		fmt.Fprintf(w, "Problem: %s\n", p)
	}
	return nil
}

func validateOutputFormat(outputFormat string) error {
	switch strings.ToLower(outputFormat) {
	case "text":
	case "json":
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
	return nil
}
