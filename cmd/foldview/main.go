// Package main is the entry point for the foldview tool: it runs the
// folding engine over a file and either dumps the fold tree or opens an
// interactive terminal browser.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/SirmoGames/pyqode.core/internal/config"
	"github.com/SirmoGames/pyqode.core/internal/folding"
	"github.com/SirmoGames/pyqode.core/internal/folding/luadetect"
	"github.com/SirmoGames/pyqode.core/internal/linestore"
	"github.com/SirmoGames/pyqode.core/internal/logging"
	"github.com/SirmoGames/pyqode.core/internal/viewer"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		dump        bool
		verbose     bool
		tabWidth    int
		foldLimit   int
		detectorStr string
		luaScript   string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&dump, "dump", false, "Print the fold tree and exit")
	flag.BoolVar(&verbose, "verbose", false, "Include non-trigger lines in the dump")
	flag.IntVar(&tabWidth, "tab", 0, "Tab width override")
	flag.IntVar(&foldLimit, "limit", -1, "Maximum accepted fold level (0 = unbounded)")
	flag.StringVar(&detectorStr, "detector", "", "Detector strategy: indent or lua")
	flag.StringVar(&luaScript, "lua", "", "Path to a Lua detector script")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("foldview %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if tabWidth > 0 {
		cfg.TabWidth = tabWidth
	}
	if foldLimit >= 0 {
		cfg.FoldLimit = foldLimit
	}
	if detectorStr != "" {
		cfg.Detector = detectorStr
	}
	if luaScript != "" {
		cfg.Detector = config.DetectorLua
		cfg.LuaScript = luaScript
	}

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Output: os.Stderr,
		Prefix: "foldview",
	})

	store, err := loadStore(flag.Arg(0), cfg.TabWidth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	detector, cleanup, err := buildDetector(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer cleanup()

	proc := folding.NewProcessor(detector,
		folding.WithLimit(cfg.FoldLimit),
		folding.WithLogger(logger.WithComponent("processor")),
	)
	proc.ProcessAll(store)

	if dump {
		if err := folding.PrintTree(store, os.Stdout, verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	view, err := viewer.New(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := view.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadStore builds a line store from the named file, or stdin when path is
// empty or "-".
func loadStore(path string, tabWidth int) (*linestore.Store, error) {
	if path == "" || path == "-" {
		return linestore.FromReader(os.Stdin, linestore.WithTabWidth(tabWidth))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return linestore.FromReader(f, linestore.WithTabWidth(tabWidth))
}

// buildDetector creates the configured detector. The returned cleanup
// releases any resources it holds.
func buildDetector(cfg config.Config, logger *logging.Logger) (folding.Detector, func(), error) {
	switch cfg.Detector {
	case config.DetectorLua:
		det, err := luadetect.FromFile(cfg.LuaScript,
			luadetect.WithTabWidth(cfg.TabWidth),
			luadetect.WithLogger(logger.WithComponent("luadetect")),
		)
		if err != nil {
			return nil, nil, err
		}
		return det, det.Close, nil
	default:
		return folding.IndentDetector{TabWidth: cfg.TabWidth}, func() {}, nil
	}
}
