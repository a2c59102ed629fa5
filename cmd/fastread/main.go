// Package main provides the CLI entrypoint for fastread.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bheadmaster/fastread/internal/config"
	"github.com/bheadmaster/fastread/internal/document"
	"github.com/bheadmaster/fastread/internal/model"
	"github.com/bheadmaster/fastread/internal/pace"
	"github.com/bheadmaster/fastread/internal/statsui"
	"github.com/bheadmaster/fastread/internal/store"
	"github.com/bheadmaster/fastread/internal/tui"
	"github.com/bheadmaster/fastread/internal/window"
)

const (
	defaultSpeed       = 500
	defaultChunkSize   = 40
	defaultSkip        = 0
	defaultCurveWindow = 20
)

var (
	readSpeed int
	readChunk int
	readSkip  int
	readDebug bool

	statsSource      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fastread [file]",
		Short:         "TUI speedreading (RSVP) tool",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReadCmd,
	}

	rootCmd.Flags().IntVar(&readSpeed, "wpm", defaultSpeed, "reading speed in words per minute (negative reads backward)")
	rootCmd.Flags().IntVar(&readChunk, "chunk", defaultChunkSize, "context window size in words")
	rootCmd.Flags().IntVar(&readSkip, "skip", defaultSkip, "words to skip before starting")
	rootCmd.Flags().BoolVar(&readDebug, "debug", false, "write a debug log and report failure detail")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runReadCmd(cmd *cobra.Command, args []string) error {
	err := runRead(cmd, args)
	if err != nil && readDebug {
		logErrf("config: wpm=%d chunk=%d skip=%d\n", readSpeed, readChunk, readSkip)
		logErrf("debug log: %s\n", config.DefaultDebugLogPath())
	}
	return err
}

func runRead(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "wpm", &readSpeed, fileCfg.Reader.Speed)
	applyIntConfig(cmd, "chunk", &readChunk, fileCfg.Reader.ChunkSize)

	cfg := model.Config{
		Speed:     readSpeed,
		ChunkSize: readChunk,
		Skip:      readSkip,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	fileArg := ""
	if len(args) == 1 && args[0] != "-" {
		fileArg = args[0]
	}

	var words []string
	var source string
	var keyInput *os.File
	if fileArg != "" {
		words, err = document.LoadFile(fileArg)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", fileArg, err)
		}
		source = filepath.Base(fileArg)
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no input: pass a file path or pipe text on stdin")
		}
		words, err = document.Load(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		source = "stdin"
		keyInput, err = os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("failed to open terminal for key input: %w", err)
		}
		defer func() {
			if cerr := keyInput.Close(); cerr != nil {
				logErrf("failed to close terminal input: %v\n", cerr)
			}
		}()
	}

	debugLog, closeDebug, err := openDebugLog(readDebug)
	if err != nil {
		return err
	}
	defer closeDebug()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		st = nil
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close history db: %v\n", cerr)
			}
		}()
	}

	win, err := window.New(words, cfg.Skip)
	if err != nil {
		return fmt.Errorf("failed to start reader: %w", err)
	}
	engine := pace.New(win, cfg.Speed, time.Now())
	reader := tui.NewModel(win, engine, cfg, debugLog)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()}
	if keyInput != nil {
		opts = append(opts, tea.WithInput(keyInput))
	}
	program := tea.NewProgram(reader, opts...)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		program.Send(tui.InterruptMsg{})
	}()

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run reader: %w", err)
	}
	final, ok := finalModel.(*tui.Model)
	if !ok {
		return fmt.Errorf("unexpected reader model type %T", finalModel)
	}
	outcome := final.Outcome()

	if st != nil {
		session := model.SessionStats{
			StartedAt:  outcome.StartedAt,
			EndedAt:    outcome.EndedAt,
			Source:     source,
			StartIndex: outcome.StartIndex,
			EndIndex:   outcome.LastIndex,
			TotalWords: outcome.TotalWords,
			WordsRead:  outcome.WordsRead,
			DurationMs: outcome.EndedAt.Sub(outcome.StartedAt).Milliseconds(),
			SpeedWPM:   outcome.SpeedWPM,
		}
		id, err := st.InsertSession(context.Background(), session)
		if err != nil {
			logErrf("failed to save session: %v\n", err)
		} else if debugLog != nil {
			debugLog.Printf("session saved: id=%d source=%s words=%d", id, source, session.WordsRead)
		}
	}

	if outcome.Reason == tui.StopInterrupt {
		return printResumeHint(cmd, outcome, fileArg)
	}
	return nil
}

func printResumeHint(cmd *cobra.Command, outcome tui.Outcome, fileArg string) error {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Interrupted at word %d of %d.\n", outcome.LastIndex, outcome.TotalWords); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	resume := fmt.Sprintf("fastread --skip %d", outcome.LastIndex)
	if fileArg != "" {
		resume += " " + fileArg
	}
	if _, err := fmt.Fprintf(out, "Resume with: %s\n", resume); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func openDebugLog(enabled bool) (*log.Logger, func(), error) {
	if !enabled {
		return nil, func() {}, nil
	}
	path := config.DefaultDebugLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create debug log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	closeFn := func() {
		if cerr := file.Close(); cerr != nil {
			logErrf("failed to close debug log: %v\n", cerr)
		}
	}
	return log.New(file, "", log.LstdFlags|log.Lmicroseconds), closeFn, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show reading history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSource, "source", "", "source name filter (substring)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "last", &statsLast, fileCfg.Stats.Last)

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow < 1 {
		return fmt.Errorf("--curve-window must be >= 1")
	}

	cfg := model.StatsConfig{
		Source:      statsSource,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	ui := statsui.NewModel(st, cfg)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# fastread configuration
# Uncomment a value to enable it. CLI flags override config values.

[reader]
# wpm = %d               # Reading speed in words per minute (negative reads backward)
# chunk = %d              # Context window size in words

[stats]
# last = 50               # Limit stats to the last N sessions
`,
		defaultSpeed,
		defaultChunkSize,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Speed < pace.MinSpeed || cfg.Speed > pace.MaxSpeed {
		return fmt.Errorf("--wpm must be between %d and %d", pace.MinSpeed, pace.MaxSpeed)
	}
	if cfg.ChunkSize < 1 {
		return fmt.Errorf("--chunk must be >= 1")
	}
	if cfg.Skip < 0 {
		return fmt.Errorf("--skip must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
