package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/redraft-dev/redraft/internal/config"
)

func testConfig() *config.Config {
	return config.DefaultConfig()
}

func TestVersionCmd(t *testing.T) {
	app := New()
	app.SetVersion("1.2.3", "abc1234", "2026-08-30")

	var buf bytes.Buffer
	app.rootCmd.SetOut(&buf)
	app.rootCmd.SetArgs([]string{"version"})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"redraft version 1.2.3", "commit: abc1234", "built: 2026-08-30"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionCmd_Defaults(t *testing.T) {
	app := New()

	var buf bytes.Buffer
	app.rootCmd.SetOut(&buf)
	app.rootCmd.SetArgs([]string{"version"})

	if err := app.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(buf.String(), "redraft version dev") {
		t.Errorf("expected dev version, got:\n%s", buf.String())
	}
}

func TestNew_RegistersCommands(t *testing.T) {
	app := New()

	want := map[string]bool{"run": false, "history": false, "version": false}
	for _, cmd := range app.rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
