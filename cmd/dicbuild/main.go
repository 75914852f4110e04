// Command dicbuild compiles lexicon CSV sources into a binary dictionary
// entry block.
//
// Usage:
//
//	dicbuild [-config build.yaml] [-o out.dic] [-left N] [-right N] lexicon.csv...
//
// Flags override the config file; positional arguments are appended to
// the configured lexicon list. The build is fail-fast: the first bad row
// aborts without committing an artifact.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/kotodict/kotodict"
	"github.com/kotodict/kotodict/build"
	"github.com/kotodict/kotodict/dictionary"
	"github.com/kotodict/kotodict/output"
)

type config struct {
	Output     string   `yaml:"output" env:"DICBUILD_OUTPUT" env-default:"system.dic"`
	Lexicon    []string `yaml:"lexicon"`
	LeftLimit  int      `yaml:"left_limit" env:"DICBUILD_LEFT_LIMIT"`
	RightLimit int      `yaml:"right_limit" env:"DICBUILD_RIGHT_LIMIT"`
	LogLevel   string   `yaml:"log_level" env:"DICBUILD_LOG_LEVEL" env-default:"info"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dicbuild:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		outPath    string
		leftLimit  int
		rightLimit int
		logLevel   string
	)
	flag.StringVar(&configPath, "config", "", "YAML build config")
	flag.StringVar(&outPath, "o", "", "output dictionary path")
	flag.IntVar(&leftLimit, "left", 0, "exclusive left-id limit from the connection matrix")
	flag.IntVar(&rightLimit, "right", 0, "exclusive right-id limit from the connection matrix")
	flag.StringVar(&logLevel, "log", "", "log level (debug, info, warn, error)")
	flag.Parse()

	var cfg config
	var err error
	if configPath != "" {
		err = cleanenv.ReadConfig(configPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if outPath != "" {
		cfg.Output = outPath
	}
	if leftLimit > 0 {
		cfg.LeftLimit = leftLimit
	}
	if rightLimit > 0 {
		cfg.RightLimit = rightLimit
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	cfg.Lexicon = append(cfg.Lexicon, flag.Args()...)
	if len(cfg.Lexicon) == 0 {
		return fmt.Errorf("no lexicon sources given")
	}

	logger := newLogger(cfg.LogLevel)

	posTable := dictionary.NewPOSTable()
	lx := build.NewLexicon(posTable.Registering())
	lx.Parameters().SetLimits(cfg.LeftLimit, cfg.RightLimit)

	for _, src := range cfg.Lexicon {
		rows, err := lx.ReadFile(src)
		logger.LogIngest(src, rows, err)
		if err != nil {
			return err
		}
	}

	err = output.Save(cfg.Output, logger, func(mo output.ModelOutput) error {
		return lx.WriteTo(mo)
	})
	var size int64
	if err == nil {
		if fi, serr := os.Stat(cfg.Output); serr == nil {
			size = fi.Size()
		}
	}
	logger.LogBuild(cfg.Output, lx.Size(), size, err)
	return err
}

func newLogger(level string) *kotodict.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return kotodict.NewTextLogger(l)
}
