package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/memberhub/portal/internal/domain/access"
	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/domain/route"
)

type routeRow struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Layout  string `json:"layout"`
	Guard   string `json:"guard"`
}

func runRoutes(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("routes", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print the table as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	descs := route.DefaultTable().Descriptors()
	rows := make([]routeRow, 0, len(descs))
	for _, d := range descs {
		rows = append(rows, routeRow{Name: d.Name, Pattern: d.Pattern, Layout: string(d.Layout), Guard: d.Guard.String()})
	}

	if *asJSON {
		enc := json.NewEncoder(cmdCtx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	w := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(w, "Name\tPattern\tLayout\tGuard"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := writef(w, "%s\t%s\t%s\t%s\n", r.Name, r.Pattern, r.Layout, r.Guard); err != nil {
			return fmt.Errorf("write route %q: %w", r.Name, err)
		}
	}
	return w.Flush()
}

type checkAccessOptions struct {
	Path string
	Role string
}

func parseCheckAccessFlags(args []string) (checkAccessOptions, error) {
	fs := flag.NewFlagSet("check-access", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts checkAccessOptions
	fs.StringVar(&opts.Role, "role", "", "Role of the visitor (empty for an anonymous visitor)")
	if err := fs.Parse(args); err != nil {
		return checkAccessOptions{}, err
	}
	if fs.NArg() != 1 {
		return checkAccessOptions{}, errors.New("usage: portal-admin check-access [--role R] <path>")
	}
	opts.Path = fs.Arg(0)
	return opts, nil
}

// visitorSession builds the session a visitor with role would carry; "" and "anonymous" mean none.
func visitorSession(role string) (*domainauth.Session, error) {
	role = strings.TrimSpace(role)
	if role == "" || strings.EqualFold(role, "anonymous") {
		return nil, nil
	}
	r, err := domainauth.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return &domainauth.Session{
		ID:   "check-access",
		User: &domainauth.User{ID: "check-access", Role: r, IsVerified: true},
	}, nil
}

func runCheckAccess(cmdCtx *commandContext, args []string) error {
	opts, err := parseCheckAccessFlags(args)
	if err != nil {
		return err
	}
	session, err := visitorSession(opts.Role)
	if err != nil {
		return err
	}

	path, _, _ := strings.Cut(opts.Path, "?")
	d, params, ok := route.DefaultTable().Match(path)
	if !ok {
		return writef(cmdCtx.Out, "%s: no page matches; the not-found page is shown\n", path)
	}

	decision := access.Decide(d.Guard, session)
	if err := writef(cmdCtx.Out, "%s -> %s (%s guard, %s layout)\n", path, d.Name, d.Guard, d.Layout); err != nil {
		return err
	}
	for name, value := range params {
		if err := writef(cmdCtx.Out, "  %s = %s\n", name, value); err != nil {
			return err
		}
	}
	if decision.Allowed() {
		return writeln(cmdCtx.Out, "  allowed")
	}
	return writef(cmdCtx.Out, "  redirected to %s\n", decision.RedirectTo)
}
