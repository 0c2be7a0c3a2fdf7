package eventkit

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/randalmurphal/eventkit/pkg/eventkit/config"
	"github.com/randalmurphal/eventkit/pkg/eventkit/journal"
)

// LoadConfig builds a dispatcher Config from loaded settings.
//
// Recognized keys:
//   - logging.level: slog level name ("debug", "info", "warn", "error");
//     presence enables a JSON logger on stderr
//   - metrics.enabled: bool
//   - tracing.enabled: bool
//   - journal.driver: "memory" or "sqlite"
//   - journal.path: SQLite file path (driver "sqlite" only)
//
// The caller owns any journal created here and should Close it through
// the returned Config.
func LoadConfig(settings config.Config) (Config, error) {
	cfg := DefaultConfig

	if name := settings.String("logging.level", ""); name != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(name)); err != nil {
			return Config{}, fmt.Errorf("parse logging.level: %w", err)
		}
		cfg.Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	cfg.Metrics = settings.Bool("metrics.enabled", false)
	cfg.Tracing = settings.Bool("tracing.enabled", false)

	switch driver := settings.String("journal.driver", ""); driver {
	case "":
	case "memory":
		cfg.Journal = journal.NewMemoryJournal()
	case "sqlite":
		rec, err := journal.NewSQLiteJournal(settings.String("journal.path", "eventkit.db"))
		if err != nil {
			return Config{}, fmt.Errorf("open journal: %w", err)
		}
		cfg.Journal = rec
	default:
		return Config{}, fmt.Errorf("unknown journal driver %q", driver)
	}

	return cfg, nil
}
