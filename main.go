package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
)

func main() {
	configFlag := flag.String("config", "", "path to config file (default "+defaultConfigPath+" if present)")
	patternFlag := flag.String("pattern", "", "path to the pattern file, one hex suffix per line")
	outputFlag := flag.String("output", "", "directory for exported keys")
	threadsFlag := flag.Int("threads", 0, "worker count (default: number of CPUs)")
	uidFlag := flag.String("uid", "", "user id embedded in generated keys")
	backshiftFlag := flag.Int("max-backshift-days", 0, "maximum creation-time backshift in days")
	encryptFlag := flag.Bool("encrypt", false, "passphrase-protect exported keys")
	statsJSONFlag := flag.String("stats-json", "", "optional path for a periodic stats snapshot")
	logLevelFlag := flag.String("log-level", "", "log level: debug, info, warn, error")
	logFileFlag := flag.String("log-file", "", "mirror logs to this file")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(softwareName, softwareVersion)
		return
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fatal("config", err)
	}
	applyOverrides(&cfg, flagOverrides{
		uid:              *uidFlag,
		patternFile:      *patternFlag,
		outputDir:        *outputFlag,
		threads:          *threadsFlag,
		maxBackshiftDays: *backshiftFlag,
		encrypt:          *encryptFlag,
		statsJSONPath:    *statsJSONFlag,
		logLevel:         *logLevelFlag,
		logFile:          *logFileFlag,
	})
	if err := validateConfig(&cfg); err != nil {
		fatal("config", err)
	}

	level, _ := parseLogLevel(cfg.LogLevel)
	logger.setLevel(level)
	if err := logger.setMirrorFile(cfg.LogFile); err != nil {
		fatal("log file", err, "path", cfg.LogFile)
	}

	patterns, err := loadPatterns(cfg.PatternFile)
	if err != nil {
		fatal("pattern file", err, "path", cfg.PatternFile)
	}
	if err := ensureOutputDir(cfg.OutputDir); err != nil {
		fatal("output dir", err, "path", cfg.OutputDir)
	}

	logger.Info("starting search",
		"threads", cfg.Threads,
		"uid", cfg.UID,
		"max_backshift_days", cfg.MaxBackshiftDays,
		"patterns", strings.Join(patterns, ","))
	logger.Debug("seed hash backend", "impl", seedHashBackendName())

	var stopFlag atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range sigCh {
			// The flag only ever transitions false -> true; repeated
			// interrupts before shutdown completes are ignored.
			if stopFlag.CompareAndSwap(false, true) {
				logger.Warn("interrupt received, waiting for workers to finish")
			}
		}
	}()

	if err := runSearch(cfg, patterns, &stopFlag); err != nil {
		fatal("search failed", err)
	}

	logger.Info("shutdown complete")
	logger.Stop()
}
