package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smileynet/safecircle"
	"github.com/smileynet/safecircle/internal/config"
	"github.com/smileynet/safecircle/internal/roster"
	"github.com/smileynet/safecircle/internal/ui"
)

// errExitCalled is a sentinel used to catch kong's os.Exit calls in tests.
var errExitCalled = errors.New("exit called")

// mockTeaRunner records whether Run was called.
type mockTeaRunner struct {
	ran bool
	err error
}

func (m *mockTeaRunner) Run() (tea.Model, error) {
	m.ran = true
	return nil, m.err
}

func TestFeature_CLI(t *testing.T) {
	t.Run("version flag prints version commit and date", func(t *testing.T) {
		// Given: a CLI parser with version, commit, and date fields
		var cli CLI
		var buf bytes.Buffer
		versionStr := "v1.0.0 abc1234 2026-01-01T00:00:00Z"
		k, err := kong.New(&cli,
			kong.Vars{"version": versionStr},
			kong.Writers(&buf, &buf),
			kong.Exit(func(int) { panic(errExitCalled) }),
		)
		if err != nil {
			t.Fatal(err)
		}

		// When: --version flag is passed
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic from --version flag")
			}
			err, ok := r.(error)
			if !ok || !errors.Is(err, errExitCalled) {
				panic(r)
			}

			// Then: version, commit, and date are all present in output
			output := buf.String()
			for _, want := range []string{"v1.0.0", "abc1234", "2026-01-01T00:00:00Z"} {
				if !strings.Contains(output, want) {
					t.Errorf("version output = %q, want to contain %q", output, want)
				}
			}
		}()

		k.Parse([]string{"--version"}) //nolint:errcheck // --version triggers panic via Exit hook
	})

	t.Run("no args selects start", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		// When: no arguments are provided
		kctx, err := k.Parse([]string{})
		if err != nil {
			t.Fatal(err)
		}

		// Then: start runs with its defaults
		if kctx.Command() != "start" {
			t.Errorf("got command %q, want %q", kctx.Command(), "start")
		}
		if cli.Start.Plain {
			t.Error("Plain should default to false")
		}
		if cli.Start.Tab != "contacts" {
			t.Errorf("Tab = %q, want contacts", cli.Start.Tab)
		}
	})

	t.Run("start accepts --plain and --tab", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		_, err = k.Parse([]string{"start", "--plain", "--tab", "track"})
		if err != nil {
			t.Fatal(err)
		}

		if !cli.Start.Plain {
			t.Error("Plain = false, want true")
		}
		if parseTab(cli.Start.Tab) != ui.TabTrack {
			t.Errorf("parseTab(%q) = %v, want track", cli.Start.Tab, parseTab(cli.Start.Tab))
		}
	})

	t.Run("start rejects unknown tab", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		if _, err := k.Parse([]string{"start", "--tab", "map"}); err == nil {
			t.Error("expected enum error for --tab map")
		}
	})

	t.Run("contacts command parses", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		kctx, err := k.Parse([]string{"contacts"})
		if err != nil {
			t.Fatal(err)
		}
		if kctx.Command() != "contacts" {
			t.Errorf("got command %q, want contacts", kctx.Command())
		}
	})
}

func TestFeature_StartCommand(t *testing.T) {
	t.Run("tui runner is invoked", func(t *testing.T) {
		// Given: a start command and a mock runner
		cmd := &StartCmd{}
		runner := &mockTeaRunner{}

		// When: runTUI is called
		err := cmd.runTUI(runner, zap.NewNop())

		// Then: the runner ran without error
		if err != nil {
			t.Fatalf("runTUI() error = %v", err)
		}
		if !runner.ran {
			t.Error("runner was not invoked")
		}
	})

	t.Run("tui runner error is wrapped", func(t *testing.T) {
		cmd := &StartCmd{}
		runner := &mockTeaRunner{err: fmt.Errorf("no tty")}

		err := cmd.runTUI(runner, zap.NewNop())

		if err == nil || !strings.Contains(err.Error(), "start: no tty") {
			t.Errorf("runTUI() error = %v, want wrapped runner error", err)
		}
	})

	t.Run("console uses configured emergency entry", func(t *testing.T) {
		// Given: config with a custom emergency number
		cfg := config.DefaultConfig()
		cfg.Emergency = config.Emergency{Name: "Ambulance", Number: "108"}
		var out bytes.Buffer

		// When: a short script runs through the console
		err := (&StartCmd{Plain: true}).runConsole(context.Background(), &cfg, zap.NewNop(),
			strings.NewReader("remove 0\nname Asha\nphone 99\nsubmit\nlist\nquit\n"), &out)

		// Then: the seed is protected and the new contact follows it
		if err != nil {
			t.Fatalf("runConsole() error = %v", err)
		}
		for _, want := range []string{
			"[Not allowed] Ambulance cannot be removed",
			"[Saved] Asha added",
			" 0. Ambulance  108  [protected]",
			" 1. Asha  99",
		} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("output missing %q, got:\n%s", want, out.String())
			}
		}
	})

	t.Run("cancelled console exits cleanly", func(t *testing.T) {
		cfg := config.DefaultConfig()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := (&StartCmd{}).runConsole(ctx, &cfg, zap.NewNop(), strings.NewReader("list\n"), &bytes.Buffer{})

		if err != nil {
			t.Errorf("runConsole() error = %v, want nil on cancel", err)
		}
	})
}

func TestFeature_ContactsCommand(t *testing.T) {
	// Given: the default config
	cfg := config.DefaultConfig()
	var out bytes.Buffer

	// When: contacts runs
	if err := (&ContactsCmd{}).run(&out, &cfg); err != nil {
		t.Fatal(err)
	}

	// Then: only the protected default entry is listed
	if got, want := out.String(), " 0. Police of India  100  [protected]\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitSuccess},
		{"out of range", fmt.Errorf("x: %w", &roster.OutOfRangeError{Index: 3, Len: 1}), exitRuntime},
		{"setup", errors.New("config: bad"), exitSetup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewTracker_UsesMapConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Map.Permission = false

	tr := newTracker(&cfg)

	if _, err := tr.TrackMe(context.Background()); err == nil {
		t.Error("TrackMe() should fail when permission is not granted")
	}
}

func TestFeature_InitCommand(t *testing.T) {
	t.Run("writes the embedded template", func(t *testing.T) {
		// Given: an empty project directory
		dir := filepath.Join(t.TempDir(), ".safecircle")
		var out bytes.Buffer

		// When: init runs with the built-in templates
		if err := (&InitCmd{}).run(safecircle.Templates, dir, &out); err != nil {
			t.Fatalf("run() error = %v", err)
		}

		// Then: the file loads back to the defaults
		cfg, err := config.Load(filepath.Join(dir, "config.yaml"))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Emergency.Number != "100" {
			t.Errorf("Emergency.Number = %q, want 100", cfg.Emergency.Number)
		}
		if !strings.Contains(out.String(), "wrote ") {
			t.Errorf("output = %q, want a wrote line", out.String())
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("emergency:\n  number: \"112\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		err := (&InitCmd{}).run(safecircle.Templates, dir, &bytes.Buffer{})

		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Fatalf("run() error = %v, want already exists", err)
		}
		data, _ := os.ReadFile(path)
		if !strings.Contains(string(data), "112") {
			t.Error("existing config was modified")
		}
	})

	t.Run("force overwrites", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("emergency:\n  number: \"112\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := (&InitCmd{Force: true}).run(safecircle.Templates, dir, &bytes.Buffer{}); err != nil {
			t.Fatalf("run() error = %v", err)
		}

		cfg, err := config.Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Emergency.Number != "100" {
			t.Errorf("Emergency.Number = %q, want 100", cfg.Emergency.Number)
		}
	})

	t.Run("rejects a template with unknown fields", func(t *testing.T) {
		templates := fstest.MapFS{
			safecircle.ConfigTemplate: &fstest.MapFile{Data: []byte("sirens: loud\n")},
		}

		dir := t.TempDir()
		err := (&InitCmd{}).run(templates, dir, &bytes.Buffer{})

		if err == nil || !strings.Contains(err.Error(), "not valid config") {
			t.Errorf("run() error = %v, want invalid template error", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "config.yaml")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("invalid template was written to disk (stat err = %v)", err)
		}
	})

	t.Run("rejects a template with unusable values", func(t *testing.T) {
		templates := fstest.MapFS{
			safecircle.ConfigTemplate: &fstest.MapFile{Data: []byte("map:\n  latitude: 120\n")},
		}
		dir := t.TempDir()

		err := (&InitCmd{Force: true}).run(templates, dir, &bytes.Buffer{})

		if err == nil {
			t.Fatal("run() error = nil, want validation error")
		}
		if _, err := os.Stat(filepath.Join(dir, "config.yaml")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("invalid template was written to disk (stat err = %v)", err)
		}
	})
}
