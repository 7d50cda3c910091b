package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoginCmd_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"login", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("login --help failed: %v", err)
	}
	out := buf.String()
	for _, flag := range []string{"--email", "--password", "--config"} {
		if !strings.Contains(out, flag) {
			t.Errorf("expected %s flag, got: %s", flag, out)
		}
	}
}

func TestNewLoginCmd(t *testing.T) {
	cmd := newLoginCmd()
	if cmd.Use != "login" {
		t.Errorf("Use = %q, want %q", cmd.Use, "login")
	}
	for _, name := range []string{"email", "password", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag %q", name)
		}
	}
}

func TestNewRegisterCmd(t *testing.T) {
	cmd := newRegisterCmd()
	if cmd.Use != "register" {
		t.Errorf("Use = %q, want %q", cmd.Use, "register")
	}
	for _, name := range []string{"name", "email", "password", "confirm", "phone", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("missing flag %q", name)
		}
	}
}

func TestLoginCmd_RequiresEmail(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"login"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error when --email is missing")
	}
}

func TestNewWhoamiCmd(t *testing.T) {
	cmd := newWhoamiCmd()
	if cmd.Use != "whoami" {
		t.Errorf("Use = %q, want %q", cmd.Use, "whoami")
	}
	if cmd.Flags().Lookup("remote") == nil {
		t.Error("missing flag remote")
	}
}

func TestProfileCmd_Subcommands(t *testing.T) {
	cmd := newProfileCmd()
	if !cmd.HasSubCommands() {
		t.Fatal("profile command should have subcommands")
	}
	want := map[string]bool{"update": false, "password": false, "forgot": false, "reset": false}
	for _, sub := range cmd.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
