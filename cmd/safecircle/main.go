package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/safecircle"
	"github.com/smileynet/safecircle/internal/config"
	"github.com/smileynet/safecircle/internal/console"
	"github.com/smileynet/safecircle/internal/logging"
	"github.com/smileynet/safecircle/internal/roster"
	"github.com/smileynet/safecircle/internal/session"
	"github.com/smileynet/safecircle/internal/tracker"
	"github.com/smileynet/safecircle/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for safecircle.
type CLI struct {
	Version  kong.VersionFlag `help:"Show version." short:"V"`
	Start    StartCmd         `cmd:"" default:"withargs" help:"Open the safety companion (TUI on a terminal, plain console otherwise)."`
	Contacts ContactsCmd      `cmd:"" help:"Print the starting emergency contact roster."`
	Init     InitCmd          `cmd:"" help:"Write a starter config to .safecircle/config.yaml."`
}

// StartCmd opens an interactive session.
type StartCmd struct {
	Plain bool   `help:"Force the plain line console even if stdout is a TTY." default:"false"`
	Tab   string `help:"Tab to open first." enum:"track,contacts,profile" default:"contacts"`
}

// ContactsCmd prints the seeded roster.
type ContactsCmd struct{}

// InitCmd writes the starter config.
type InitCmd struct {
	Force bool `help:"Overwrite an existing config file." default:"false"`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/safecircle/config.yaml"),
		".safecircle/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// seedContact converts the emergency config section into the protected entry.
func seedContact(cfg *config.Config) roster.Contact {
	return roster.Contact{DisplayName: cfg.Emergency.Name, PhoneNumber: cfg.Emergency.Number}
}

// newTracker builds the track pane state from the map config section.
func newTracker(cfg *config.Config) *tracker.Tracker {
	loc := tracker.StaticLocator{
		Granted: cfg.Map.Permission,
		Fix:     tracker.Position{Latitude: cfg.Map.FixLat, Longitude: cfg.Map.FixLon},
	}
	return tracker.New(loc, tracker.Position{Latitude: cfg.Map.Latitude, Longitude: cfg.Map.Longitude})
}

// parseTab maps the --tab flag to a ui.Tab.
func parseTab(s string) ui.Tab {
	switch s {
	case "track":
		return ui.TabTrack
	case "profile":
		return ui.TabProfile
	default:
		return ui.TabContacts
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Run builds the session and hands it to the TUI or the plain console.
func (s *StartCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if s.Plain || !isTerminal(os.Stdout) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return s.runConsole(ctx, cfg, logger, os.Stdin, os.Stdout)
	}

	notices := ui.NewNoticeQueue()
	sess := session.New(seedContact(cfg), session.WithNotifier(notices), session.WithLogger(logger))
	m := ui.NewModel(sess, notices,
		ui.WithTracker(newTracker(cfg)),
		ui.WithProfile(ui.ProfileInfo{Name: cfg.Profile.Name, Phone: cfg.Profile.Phone}),
		ui.WithStartTab(parseTab(s.Tab)),
	)
	return s.runTUI(tea.NewProgram(m, tea.WithAltScreen()), logger)
}

// runTUI executes the tea program, enabling testable wiring.
func (s *StartCmd) runTUI(prog teaRunner, logger *zap.Logger) error {
	logger.Info("tui started")
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	return nil
}

// runConsole drives a session from line input, enabling testable wiring.
func (s *StartCmd) runConsole(ctx context.Context, cfg *config.Config, logger *zap.Logger, in io.Reader, w io.Writer) error {
	sess := session.New(seedContact(cfg),
		session.WithNotifier(console.NewPrinter(w)),
		session.WithLogger(logger),
	)
	logger.Info("console started")
	err := console.New(sess, w).Run(ctx, in)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Run prints the roster a new session starts with.
func (c *ContactsCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("contacts: %w", err)
	}
	return c.run(os.Stdout, cfg)
}

func (c *ContactsCmd) run(w io.Writer, cfg *config.Config) error {
	console.PrintContacts(w, roster.New(seedContact(cfg)).Contacts())
	return nil
}

// Run writes the starter config into the current project.
func (c *InitCmd) Run() error {
	templates := safecircle.OverlayFS(os.ExpandEnv("$HOME/.config/safecircle/templates"), safecircle.Templates)
	return c.run(templates, ".safecircle", os.Stdout)
}

// run copies the config template from templates into dir/config.yaml.
// A template in the user's templates directory replaces the built-in one.
func (c *InitCmd) run(templates fs.FS, dir string, w io.Writer) error {
	data, err := fs.ReadFile(templates, safecircle.ConfigTemplate)
	if err != nil {
		return fmt.Errorf("init: reading template: %w", err)
	}

	if _, err := config.Parse(safecircle.ConfigTemplate, data); err != nil {
		return fmt.Errorf("init: template is not valid config: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if !c.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("init: %s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	_, _ = fmt.Fprintf(w, "wrote %s\n", path)
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// exitCode maps an error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, roster.ErrOutOfRange) {
		return exitRuntime
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Description("A terminal safety companion: emergency contacts, location and profile."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
