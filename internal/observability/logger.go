package observability

import "go.uber.org/zap"

// Logger is the process-wide structured logger. It defaults to a no-op
// logger so library code can log before InitLogger runs, and so tests can
// swap in an observer core.
var Logger = zap.NewNop()

// InitLogger builds the production logger writing to the given file path.
func InitLogger(path string) error {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Logger = logger
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}
