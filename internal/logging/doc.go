// Package logging provides structured logging for condrv.
//
// It wraps Go's log/slog to write one JSON object per line, either to
// {dir}/condrv.log or to stderr.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Persistent attributes through With and WithComponent
//   - Size-based rotation with optional gzip compression of backups
//
// # Thread Safety
//
// [Logger] and [RotatingWriter] are safe for concurrent use. Child loggers
// created via With* methods share the underlying writer.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	con := console.New(console.WithLogger(logger.WithComponent("console")))
//
// Every console call is then recorded at DEBUG:
//
//	{"time":"...","level":"DEBUG","msg":"console call","component":"console","call":"GetConsoleTitleW","handle":"H[0x6f]","result":15}
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewLoggerWithWriter] with a
// bytes.Buffer to assert on entries.
package logging
