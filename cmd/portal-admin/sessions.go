package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/memberhub/portal/internal/bootstrap"
	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/service"
)

const sessionCommandTimeout = 30 * time.Second

// openAuthService connects to the configured session store. Closing the returned
// client is the caller's job.
func openAuthService(cmdCtx *commandContext) (*service.AuthService, redis.UniversalClient, error) {
	if cmdCtx.Config.UseMemorySessions() {
		return nil, nil, errors.New("sessions are kept in the portal's memory; configure SESSION_STORE=redis to manage them")
	}
	client, err := bootstrap.ConnectSessionBackend(cmdCtx.Ctx, &cmdCtx.Config, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	svc, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cmdCtx.Config,
		RedisClient: client,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return nil, nil, errors.Join(err, client.Close())
	}
	return svc.Auth, client, nil
}

type sessionRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	Refreshed time.Time `json:"refreshed_at"`
}

func toSessionRows(sessions []domainauth.Session) []sessionRow {
	rows := make([]sessionRow, 0, len(sessions))
	for _, s := range sessions {
		row := sessionRow{ID: s.ID, ExpiresAt: s.ExpiresAt, Refreshed: s.RefreshedAt}
		if s.User != nil {
			row.UserID = s.User.ID
			row.Name = s.User.DisplayName()
			row.Email = s.User.Email
			row.Role = string(s.User.Role)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ExpiresAt.Before(rows[j].ExpiresAt) })
	return rows
}

func runListSessions(cmdCtx *commandContext, args []string) (err error) {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print sessions as JSON")
	role := fs.String("role", "", "Only show sessions of members with this role")
	if err = fs.Parse(args); err != nil {
		return err
	}

	auth, client, err := openAuthService(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close redis: %w", cerr))
		}
	}()

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, sessionCommandTimeout)
	defer cancel()
	sessions, err := auth.ListSessions(ctx)
	if err != nil {
		return err
	}
	return printSessions(cmdCtx, filterSessions(toSessionRows(sessions), *role), *asJSON)
}

func filterSessions(rows []sessionRow, role string) []sessionRow {
	if role == "" {
		return rows
	}
	out := rows[:0:0]
	for _, r := range rows {
		if strings.EqualFold(r.Role, role) {
			out = append(out, r)
		}
	}
	return out
}

func printSessions(cmdCtx *commandContext, rows []sessionRow, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmdCtx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	if len(rows) == 0 {
		return writeln(cmdCtx.Out, "No live sessions.")
	}

	w := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(w, "ID\tMember\tEmail\tRole\tExpires"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = "(anonymous)"
		}
		if err := writef(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, name, dash(r.Email), dash(r.Role), r.ExpiresAt.Format(time.RFC3339)); err != nil {
			return fmt.Errorf("write session %q: %w", r.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "\n%d session(s)\n", len(rows))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type revokeOptions struct {
	ID  string
	Yes bool
}

func parseRevokeFlags(args []string) (revokeOptions, error) {
	fs := flag.NewFlagSet("revoke-session", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts revokeOptions
	fs.StringVar(&opts.ID, "id", "", "Session ID to revoke (required)")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return revokeOptions{}, err
	}
	opts.ID = strings.TrimSpace(opts.ID)
	if opts.ID == "" {
		return revokeOptions{}, errors.New("--id is required")
	}
	return opts, nil
}

func confirmRevoke(cmdCtx *commandContext, opts revokeOptions) error {
	if opts.Yes {
		return nil
	}
	if err := writef(cmdCtx.Out, "About to revoke session %s.\nContinue? [y/N]: ", opts.ID); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	resp, err := bufio.NewReader(cmdCtx.In).ReadString('\n')
	if err != nil && resp == "" {
		return fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(resp)) {
	case "y", "yes":
		return nil
	default:
		return errors.New("aborted")
	}
}

func runRevokeSession(cmdCtx *commandContext, args []string) (err error) {
	opts, err := parseRevokeFlags(args)
	if err != nil {
		return err
	}
	if err = confirmRevoke(cmdCtx, opts); err != nil {
		return err
	}

	auth, client, err := openAuthService(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close redis: %w", cerr))
		}
	}()

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, sessionCommandTimeout)
	defer cancel()
	if err = auth.RevokeSession(ctx, opts.ID); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "Session %s revoked.\n", opts.ID)
}
