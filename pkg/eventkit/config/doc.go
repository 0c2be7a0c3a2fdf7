/*
Package config provides type-safe configuration extraction from map[string]any.

# Overview

config wraps a map[string]any and provides typed accessor methods that handle
missing keys and type mismatches gracefully by returning default values.
Keys are dotted paths resolved through nested maps, matching the shape of
parsed YAML/JSON documents, so values can be extracted without verbose type
assertions and nil checks.

# Basic Usage

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "logging": map[string]any{"level": "debug"},
	    "metrics": map[string]any{"enabled": true},
	    "journal": map[string]any{"driver": "sqlite", "path": "./journal.db"},
	})

	level := cfg.String("logging.level", "info")  // "debug"
	metrics := cfg.Bool("metrics.enabled", false) // true
	driver := cfg.String("journal.driver", "")    // "sqlite"
	missing := cfg.Int("workers", 4)              // 4

# Type Coercion

Duration handles multiple input types:
  - string: parsed with time.ParseDuration ("30s", "1h30m")
  - int/float64: interpreted as seconds
  - time.Duration: used directly

Numeric and boolean accessors also parse strings, because environment
values always arrive as strings:
  - int from float64 (truncated) or strconv.Atoi
  - float64 from int or strconv.ParseFloat
  - bool from strconv.ParseBool

All methods return the default value if:
  - The key is missing
  - The value cannot be converted to the requested type
  - The conversion would lose precision (e.g., float to int with fraction)

# Loading and Layering

Load configuration from YAML or JSON files, overlay the environment, and
read the result:

	fileCfg, err := config.FromFile("eventkit.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	cfg := fileCfg.Merge(config.FromEnv("EVENTKIT_"))

FromEnv maps EVENTKIT_JOURNAL_PATH to the key "journal.path". Merge is
recursive: nested maps combine, with the overlay winning per key.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation. However, if the original map is modified
externally, behavior is undefined.
*/
package config
