package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/Manideep236692/IARE-ChatBot/internal/api"
	"github.com/Manideep236692/IARE-ChatBot/internal/config"
	"github.com/Manideep236692/IARE-ChatBot/internal/db"
	"github.com/Manideep236692/IARE-ChatBot/internal/logging"
	"github.com/Manideep236692/IARE-ChatBot/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app bundles everything a command needs: config, the restored session,
// and an API client wired to it.
type app struct {
	cfg     *config.Config
	session *session.Store
	client  *api.Client
}

// loadApp loads configuration, opens the local state database, restores
// the session snapshot, and builds the API client around it.
func loadApp(cmd *cobra.Command, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logging.Init(cfg.Log)

	gdb, err := db.Open(cfg.State.DBPath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return nil, err
	}

	sess, err := session.NewStore(gdb)
	if err != nil {
		return nil, err
	}

	out := cmd.ErrOrStderr()
	client := api.New(cfg.API.BaseURL, sess,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		api.WithLogger(log),
		api.WithExpiredHandler(func() {
			fmt.Fprintln(out, "Session expired. Run `ccb login` to sign in again.")
		}),
	)

	return &app{cfg: cfg, session: sess, client: client}, nil
}

// requireLogin fails fast when no session exists, before any network call.
func (a *app) requireLogin() error {
	if !a.session.Authenticated() {
		return fmt.Errorf("not logged in; run `ccb login` first")
	}
	return nil
}

// requireAdmin fails fast when the logged-in user lacks an admin role. The
// backend enforces this too; checking here just gives a clearer message.
func (a *app) requireAdmin() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if !a.session.User().IsAdmin() {
		return fmt.Errorf("this command needs an ADMIN or SUPER_ADMIN account")
	}
	return nil
}

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read so tests and pipes work.
func promptPassword(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		defer fmt.Fprintln(cmd.OutOrStdout())
		data, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(data), nil
	}
	return readLine(cmd.InOrStdin())
}

// readLine reads one newline-terminated line.
func readLine(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// failMessage prints the human-readable message for an API failure and
// returns a silent error so cobra exits nonzero without double-printing.
func failMessage(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", api.ErrorMessage(err))
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return err
}

// formatTime renders a timestamp for table output.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
