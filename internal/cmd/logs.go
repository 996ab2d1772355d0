package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/composite/internal/config"
	"github.com/Iron-Ham/composite/internal/logging"
	"github.com/Iron-Ham/composite/internal/util"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View composite logs",
	Long: `View and filter the JSON log written to logging.dir.

Examples:
  # Show the last 50 entries
  composite logs

  # Follow the log as runs happen
  composite logs -f

  # Only warnings and errors from run 3
  composite logs --level warn --run 3

  # Entries from the last hour matching a pattern
  composite logs --since 1h --grep "failed|canceled"`,
	RunE: runLogs,
}

var (
	logsFile    string
	logsTail    int
	logsFollow  bool
	logsLevel   string
	logsSince   string
	logsGrep    string
	logsCommand string
	logsRun     uint64
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVar(&logsFile, "file", "", "Log file (default: {logging.dir}/composite.log)")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of lines to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter logs matching pattern (regex)")
	logsCmd.Flags().StringVar(&logsCommand, "command", "", "Only entries for this composite name")
	logsCmd.Flags().Uint64Var(&logsRun, "run", 0, "Only entries for this execution run")
}

// logEntry represents a parsed JSON log line
type logEntry struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Msg     string         `json:"msg"`
	Command string         `json:"command,omitempty"`
	Mode    string         `json:"mode,omitempty"`
	Run     uint64         `json:"run,omitempty"`
	Extra   map[string]any `json:"-"` // Captures additional fields
}

// UnmarshalJSON implements custom unmarshaling to capture extra fields
func (e *logEntry) UnmarshalJSON(data []byte) error {
	// Type alias avoids recursion
	type Alias logEntry
	aux := &struct {
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, known := range []string{"time", "level", "msg", "command", "mode", "run"} {
		delete(all, known)
	}
	if len(all) > 0 {
		e.Extra = all
	}
	return nil
}

// logFilter holds the criteria an entry must meet to be shown.
type logFilter struct {
	minLevel int
	since    time.Time
	grep     *regexp.Regexp
	command  string
	run      uint64
}

// maxFieldLen caps how much of an extra field value is printed
const maxFieldLen = 200

// ANSI color codes for terminal output
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// levelColor returns the ANSI color code for a log level
func levelColor(level string) string {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return colorGray
	case logging.LevelInfo:
		return colorBlue
	case logging.LevelWarn:
		return colorYellow
	case logging.LevelError:
		return colorRed
	default:
		return colorReset
	}
}

// levelPriority returns the priority of a log level for filtering
func levelPriority(level string) int {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return 0
	case logging.LevelInfo:
		return 1
	case logging.LevelWarn:
		return 2
	case logging.LevelError:
		return 3
	default:
		return -1
	}
}

// formatLogEntry formats a log entry for terminal output
func formatLogEntry(entry *logEntry) string {
	var sb strings.Builder

	sb.WriteString(colorGray)
	sb.WriteString("[")
	sb.WriteString(entry.Time.Format("15:04:05.000"))
	sb.WriteString("]")
	sb.WriteString(colorReset)

	sb.WriteString(" ")
	sb.WriteString(levelColor(entry.Level))
	sb.WriteString("[")
	sb.WriteString(strings.ToUpper(entry.Level))
	sb.WriteString("]")
	sb.WriteString(colorReset)

	sb.WriteString(" ")
	sb.WriteString(entry.Msg)

	writeField := func(key, value string) {
		sb.WriteString(" ")
		sb.WriteString(colorCyan)
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(colorReset)
		sb.WriteString(value)
	}
	if entry.Command != "" {
		writeField("command", entry.Command)
	}
	if entry.Mode != "" {
		writeField("mode", entry.Mode)
	}
	if entry.Run != 0 {
		writeField("run", fmt.Sprint(entry.Run))
	}

	// Sorted so output is stable
	for _, key := range slices.Sorted(maps.Keys(entry.Extra)) {
		writeField(key, util.TruncateRunes(fmt.Sprintf("%v", entry.Extra[key]), maxFieldLen))
	}

	return sb.String()
}

func runLogs(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	logPath := logsFile
	if logPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Logging.Dir == "" {
			fmt.Fprintln(out, "logging.dir is not set; logs are written to stderr.")
			fmt.Fprintln(out, "Set it with: composite config set logging.dir <path>")
			return nil
		}
		logPath = filepath.Join(cfg.Logging.Dir, logging.FileName)
	}

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Fprintf(out, "No logs found at %s\n", logPath)
		return nil
	}

	filter, err := newLogFilter(logsLevel, logsSince, logsGrep, logsCommand, logsRun)
	if err != nil {
		return err
	}

	if logsFollow {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return followLogs(ctx, out, logPath, filter)
	}
	return displayLogs(out, logPath, logsTail, filter)
}

func newLogFilter(level, since, grep, command string, run uint64) (logFilter, error) {
	filter := logFilter{minLevel: -1, command: command, run: run}

	if level != "" {
		filter.minLevel = levelPriority(logging.ParseLevel(level))
	}

	if since != "" {
		duration, err := time.ParseDuration(since)
		if err != nil {
			return filter, fmt.Errorf("invalid duration format: %w", err)
		}
		filter.since = time.Now().Add(-duration)
	}

	if grep != "" {
		re, err := regexp.Compile(grep)
		if err != nil {
			return filter, fmt.Errorf("invalid grep pattern: %w", err)
		}
		filter.grep = re
	}

	return filter, nil
}

// formatLine parses and filters one log line. ok is false when the line
// should not be shown.
func formatLine(line string, filter logFilter) (formatted string, ok bool) {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		// Unparseable lines are shown raw
		return line, true
	}
	if !filter.passes(&entry) {
		return "", false
	}
	return formatLogEntry(&entry), true
}

// displayLogs reads the log file and displays filtered entries
func displayLogs(out io.Writer, logPath string, tail int, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []string
	scanner := bufio.NewScanner(file)

	// Increase buffer size for potentially long log lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if formatted, ok := formatLine(line, filter); ok {
			entries = append(entries, formatted)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	if tail > 0 && len(entries) > tail {
		entries = entries[len(entries)-tail:]
	}

	for _, entry := range entries {
		fmt.Fprintln(out, entry)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
	}

	return nil
}

// followLogs prints entries appended to the log file until ctx is done.
func followLogs(ctx context.Context, out io.Writer, logPath string, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(logPath); err != nil {
		return fmt.Errorf("failed to watch log file: %w", err)
	}

	fmt.Fprintf(out, "Following logs... (Ctrl+C to stop)\n\n")

	reader := bufio.NewReader(file)
	var partial string
	drain := func() error {
		for {
			chunk, err := reader.ReadString('\n')
			partial += chunk
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("error reading log file: %w", err)
			}

			line := strings.TrimSpace(partial)
			partial = ""
			if line == "" {
				continue
			}
			if formatted, ok := formatLine(line, filter); ok {
				fmt.Fprintln(out, formatted)
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == 0 {
				continue
			}
			if err := drain(); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

// passes checks if a log entry meets all filter criteria
func (f logFilter) passes(entry *logEntry) bool {
	if f.minLevel >= 0 && levelPriority(entry.Level) < f.minLevel {
		return false
	}

	if !f.since.IsZero() && entry.Time.Before(f.since) {
		return false
	}

	if f.command != "" && entry.Command != f.command {
		return false
	}

	if f.run != 0 && entry.Run != f.run {
		return false
	}

	// Grep searches the message and extra fields
	if f.grep != nil {
		searchText := entry.Msg
		for _, v := range entry.Extra {
			searchText += " " + fmt.Sprintf("%v", v)
		}
		if !f.grep.MatchString(searchText) {
			return false
		}
	}

	return true
}
