// Package logging provides structured logging for composite commands.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// persistent attributes, so every line written during one execution run of
// a composite can be filtered by command name, mode, and run number.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. Child loggers
// created via With* methods share the underlying writer.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("composite created", "children", 3)
//
// # Attribute Propagation
//
//	runLogger := logger.WithCommand("save-all").WithMode("all").WithRun(4)
//	runLogger.Debug("child started", "index", 0)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"child started","command":"save-all","mode":"all","run":4,"index":0}
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] with a
// bytes.Buffer to assert on what was logged.
//
// # Log Levels
//
//   - [LevelDebug]: Per-child execution detail
//   - [LevelInfo]: Lifecycle (creation, disposal)
//   - [LevelWarn]: Runs that ended in an error
//   - [LevelError]: Reserved for failures outside a run
//
// # Configuration
//
//	logging:
//	  enabled: true
//	  level: info
//	  dir: ""
package logging
