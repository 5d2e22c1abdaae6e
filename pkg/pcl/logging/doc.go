// Package logging provides the logging facade used by the pcl packages.
//
// Logger wraps the context-aware subset of log/slog:
//
//	type Logger interface {
//	    Debug(ctx context.Context, msg string, args ...any)
//	    Info(ctx context.Context, msg string, args ...any)
//	    Warn(ctx context.Context, msg string, args ...any)
//	    Error(ctx context.Context, msg string, args ...any)
//	    With(args ...any) Logger
//	}
//
// The default implementation is slog-backed:
//
//	logger := logging.New(nil) // slog.Default()
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	pcl.SetLogger(logging.New(slog.New(handler)))
//
// The bindings log file IO and handles reclaimed by the garbage collector at
// debug level. Cloud and Native build the attributes they attach:
//
//	logger.Debug(ctx, "pcd loaded", "path", path, logging.Cloud("cloud", n, w, h))
//
// Install Discard to silence the bindings entirely.
package logging
