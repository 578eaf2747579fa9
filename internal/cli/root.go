// Package cli is the jast command line. With no subcommand it opens the
// terminal UI; the subcommands script the same state.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Alixocracy/jast/internal/app"
	"github.com/Alixocracy/jast/internal/config"
	"github.com/Alixocracy/jast/internal/logging"
	"github.com/Alixocracy/jast/internal/mailer"
	"github.com/Alixocracy/jast/internal/playlist"
	"github.com/Alixocracy/jast/internal/store"
	"github.com/Alixocracy/jast/internal/summary"
	"github.com/Alixocracy/jast/internal/timer"
	"github.com/Alixocracy/jast/internal/tui"
)

// Options replaces the process-wide collaborators. Zero fields use the real
// ones.
type Options struct {
	Out    io.Writer
	Log    *slog.Logger
	Now    func() time.Time
	Titler playlist.Titler

	// Open returns the backend for cfg.
	Open func(cfg *config.Config) (store.Backend, error)
	// Sender overrides the sender built from cfg.Mail.
	Sender mailer.Sender
}

type root struct {
	opts      Options
	configDir string
	logLevel  logging.Level
}

// session is the state one command runs against.
type session struct {
	cfg     *config.Config
	log     *slog.Logger
	app     *app.App
	closers []func() error
}

func (s *session) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Execute runs the jast command line and exits on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := New(Options{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		cancel()
		os.Exit(1)
	}
}

func New(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = color.Output
	}
	r := &root{opts: opts}

	cmd := &cobra.Command{
		Use:   "jast",
		Short: "Just Another Simple Tracker: a gentle daily planner for the terminal.",
		Long: `jast keeps a short list of today's tasks, a backlog, a brain dump for
racing thoughts, a focus timer and a points tally, and can mail you a summary
at the end of the day.

Run it without arguments to open the terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if r.interactive() {
				return r.runUI(cmd)
			}
			return r.printSummary()
		},
	}

	cmd.PersistentFlags().StringVar(&r.configDir, "config", "", "directory holding .jast.yaml")
	cmd.PersistentFlags().Var(&r.logLevel, "log-level", `log level: "debug", "info", "warn" or "error"`)

	cmd.AddCommand(
		r.uiCmd(),
		r.tasksCmd(),
		r.backlogCmd(),
		r.dumpCmd(),
		r.pointsCmd(),
		r.focusCmd(),
		r.summaryCmd(),
		r.sendCmd(),
		r.exportCmd(),
		r.newDayCmd(),
		r.playlistCmd(),
		r.serveCmd(),
	)
	return cmd
}

// interactive reports whether output goes to a terminal the UI can own.
func (r *root) interactive() bool {
	if r.opts.Out != color.Output {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// open loads configuration and state. The caller closes the session.
func (r *root) open() (*session, error) {
	cfg, err := config.Load(r.configDir)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg}

	level := r.logLevel
	if level == "" {
		if err := level.Set(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("log_level %q: %w", cfg.LogLevel, err)
		}
	}
	if r.opts.Log != nil {
		s.log = r.opts.Log
	} else {
		var closeLog func() error
		s.log, closeLog = logging.Setup(cfg.LogFile, level)
		s.closers = append(s.closers, closeLog)
	}

	openBackend := r.opts.Open
	if openBackend == nil {
		openBackend = func(cfg *config.Config) (store.Backend, error) {
			return store.Open(cfg.Backend, cfg.Path)
		}
	}
	backend, err := openBackend(cfg)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}

	titler := r.opts.Titler
	if titler == nil {
		titler = playlist.NewOEmbed()
	}
	s.app, err = app.New(backend, app.Options{
		Log:          s.log,
		Titler:       titler,
		TimerMinutes: cfg.TimerMinutes,
		Now:          r.opts.Now,
	})
	if err != nil {
		backend.Close()
		s.Close()
		return nil, err
	}
	s.closers = append(s.closers, s.app.Close)
	s.log.Debug("session opened", "backend", cfg.Backend, "path", cfg.Path, "config", cfg.File)
	return s, nil
}

// sender builds the configured mail sender. A missing configuration is
// reported when a send is attempted, not before.
func (r *root) sender(s *session) mailer.Sender {
	if r.opts.Sender != nil {
		return r.opts.Sender
	}
	sender, err := mailer.New(s.cfg.Mail, mailer.NewLogObserver(s.log))
	if err != nil {
		s.log.Warn("email disabled", "err", err)
		return nil
	}
	return sender
}

func (r *root) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.runUI(cmd)
		},
	}
}

func (r *root) runUI(cmd *cobra.Command) error {
	s, err := r.open()
	if err != nil {
		return err
	}
	defer s.Close()

	exportDir, err := os.Getwd()
	if err != nil {
		exportDir = "."
	}
	deps := tui.Deps{
		Sender:      r.sender(s),
		SendTimeout: s.cfg.Mail.Timeout,
		Alarm:       &timer.Bell{W: os.Stderr},
		ExportDir:   exportDir,
		Clipboard:   clipboard.WriteAll,
		Settings: []tui.Setting{
			{Key: "Store", Value: s.cfg.Backend + " " + s.cfg.Path},
			{Key: "Config file", Value: orNone(s.cfg.File)},
			{Key: "Timer default", Value: fmt.Sprintf("%d min", s.cfg.TimerMinutes)},
			{Key: "Email", Value: mailStatus(s.cfg.Mail)},
			{Key: "Log file", Value: s.cfg.LogFile},
		},
	}
	if clipboard.Unsupported {
		deps.Clipboard = nil
	}

	p := tea.NewProgram(tui.NewApp(s.app, deps), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func (r *root) printSummary() error {
	s, err := r.open()
	if err != nil {
		return err
	}
	defer s.Close()
	_, err = fmt.Fprint(r.opts.Out, summary.Markdown(s.app.Day()))
	return err
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func mailStatus(c mailer.Config) string {
	switch {
	case c.Mode == mailer.ModeEndpoint && c.Endpoint != "":
		return "relay " + c.Endpoint
	case c.Mode != mailer.ModeEndpoint && c.APIKey != "":
		return "Resend"
	}
	return "not configured"
}
