package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/theirongolddev/notetime/internal/config"
	"github.com/theirongolddev/notetime/internal/watch"

	"github.com/spf13/cobra"
)

// watchRuntimeState is written next to the pid file so status and stop
// find a running daemon without re-deriving its flags.
type watchRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DataDir   string    `json:"data_dir"`
}

var (
	flagWatchFlush   time.Duration
	flagWatchDetach  bool
	flagWatchPIDFile string
	flagWatchLogFile string
	flagWatchChild   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the focus tracking daemon",
	Long:  "Accept focus events from editors over loopback HTTP and fold them into the time log.",
	RunE:  runWatch,
}

var watchStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show watch daemon process and API status",
	RunE:  runWatchStatus,
}

var watchStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running watch daemon",
	RunE:  runWatchStop,
}

func init() {
	runtimeDir := config.DataDir(config.DefaultConfig())
	defaultPID := filepath.Join(runtimeDir, "watch.pid")
	defaultLog := filepath.Join(runtimeDir, "watch.log")

	watchCmd.PersistentFlags().StringVar(&flagWatchPIDFile, "pid-file", defaultPID, "PID file path")
	watchCmd.PersistentFlags().StringVar(&flagWatchLogFile, "log-file", defaultLog, "Log file path for detached mode")

	watchCmd.Flags().DurationVar(&flagWatchFlush, "flush-interval", 0, "Checkpoint interval (default from config)")
	watchCmd.Flags().BoolVar(&flagWatchDetach, "detach", false, "Run the watcher as a background process")
	watchCmd.Flags().BoolVar(&flagWatchChild, "child", false, "Internal: mark detached child process")
	_ = watchCmd.Flags().MarkHidden("child")

	watchCmd.AddCommand(watchStatusCmd)
	watchCmd.AddCommand(watchStopCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	if flagWatchDetach && flagWatchChild {
		return errors.New("invalid watch launch mode")
	}

	if flagWatchDetach {
		return startWatchDetached()
	}

	return runWatchForeground()
}

func startWatchDetached() error {
	if err := ensureWatchNotRunning(flagWatchPIDFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(flagWatchPIDFile), 0o750); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagWatchLogFile), 0o750); err != nil {
		return fmt.Errorf("create watch log directory: %w", err)
	}

	logf, err := os.OpenFile(flagWatchLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open watch log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	child := exec.Command(exe, args...)
	child.Stdout = logf
	child.Stderr = logf
	child.Stdin = nil
	child.Env = os.Environ()

	if err := child.Start(); err != nil {
		return fmt.Errorf("start detached watcher: %w", err)
	}

	addr := watchAddr(loadConfig())
	fmt.Printf("  Started watcher (pid %d)\n", child.Process.Pid)
	fmt.Printf("  PID file: %s\n", flagWatchPIDFile)
	fmt.Printf("  API: http://%s/v1/status\n", addr)
	fmt.Printf("  Log: %s\n", flagWatchLogFile)
	return nil
}

func runWatchForeground() error {
	if err := ensureWatchNotRunning(flagWatchPIDFile); err != nil {
		return err
	}

	cfg := loadConfig()
	addr := watchAddr(cfg)
	flush := config.FlushInterval(cfg)
	if flagWatchFlush > 0 {
		flush = flagWatchFlush
	}

	if err := os.MkdirAll(filepath.Dir(flagWatchPIDFile), 0o750); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}

	pid := os.Getpid()
	if err := writePID(flagWatchPIDFile, pid); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagWatchPIDFile) }()

	state := watchRuntimeState{
		PID:       pid,
		Addr:      addr,
		StartedAt: time.Now(),
		DataDir:   config.DataDir(cfg),
	}
	_ = writeState(statePath(flagWatchPIDFile), state)
	defer func() { _ = os.Remove(statePath(flagWatchPIDFile)) }()

	svc := watch.New(watch.Config{
		SnapshotPath:  config.SnapshotPath(cfg),
		LedgerPath:    config.LedgerPath(cfg),
		Addr:          addr,
		FlushInterval: flush,
	})

	fmt.Printf("  notetime watch listening on http://%s\n", addr)
	fmt.Printf("  Folding into %s every %s\n", config.SnapshotPath(cfg), flush)
	fmt.Printf("  Stop with: notetime watch stop --pid-file %s\n", flagWatchPIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runWatchStatus(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagWatchPIDFile)
	if err != nil {
		fmt.Printf("  Watcher: not running (pid file not found)\n")
		return nil
	}

	if !processAlive(pid) {
		fmt.Printf("  Watcher: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := watchAddr(loadConfig())
	if st, err := readState(statePath(flagWatchPIDFile)); err == nil && st.Addr != "" {
		addr = st.Addr
	}

	fmt.Printf("  Watcher PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	st, err := watch.NewClient(addr).Status(ctx)
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}

	fmt.Printf("  Started: %s\n", st.StartedAt.Local().Format(time.RFC3339))
	fmt.Printf("  Today: %dm (%s)\n", st.Summary.TodayMinutes, st.Summary.DateKey)
	if st.Summary.Running {
		note := st.Summary.ActiveNote
		if note == "" {
			note = "(untitled)"
		}
		fmt.Printf("  Editing: %s (%s)\n", note, formatSessionMs(st.SessionMs))
	}
	fmt.Printf("  Events: %d\n", st.EventCount)
	if !st.LastSaveAt.IsZero() {
		fmt.Printf("  Last save: %s\n", st.LastSaveAt.Local().Format("15:04:05"))
	}
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}

func runWatchStop(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagWatchPIDFile)
	if err != nil {
		return ErrWatchNotRunning
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find watch process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal watch process: %w", err)
	}

	// Shutdown closes out the open session and writes a final snapshot,
	// so give it a moment before declaring failure.
	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(flagWatchPIDFile)
			_ = os.Remove(statePath(flagWatchPIDFile))
			fmt.Printf("  Stopped watcher (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}

	return fmt.Errorf("watcher (pid %d) did not exit in time", pid)
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureWatchNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("watcher already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	_ = os.Remove(statePath(pidFile))
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func statePath(pidFile string) string {
	return pidFile + ".json"
}

func writeState(path string, st watchRuntimeState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func readState(path string) (watchRuntimeState, error) {
	var st watchRuntimeState
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, err
	}
	return st, nil
}
