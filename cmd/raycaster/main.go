package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/game"
	"chosenoffset.com/raycaster/internal/logging"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/world/grid"
	"chosenoffset.com/raycaster/internal/world/levels"
)

type options struct {
	configPath string
	backend    string
	level      string
	levelsDir  string
	listLevels bool
	minimap    bool
	workers    int
	out        string
	frames     int
	logLevel   string
	cpuProfile string
}

func parseFlags(args []string) (*options, *flag.FlagSet, error) {
	o := &options{}
	fs := flag.NewFlagSet("raycaster", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "config.json", "path to the JSON config file")
	fs.StringVar(&o.backend, "backend", "ebiten", "backend: "+strings.Join(backendNames(), ", "))
	fs.StringVar(&o.level, "level", "", "level name in the levels directory, or a path to a level file")
	fs.StringVar(&o.levelsDir, "levels", "", "directory holding level files")
	fs.BoolVar(&o.listLevels, "list-levels", false, "list the available levels and exit")
	fs.BoolVar(&o.minimap, "minimap", true, "show the minimap")
	fs.IntVar(&o.workers, "workers", 1, "goroutines casting columns")
	fs.StringVar(&o.out, "out", "frame.png", "snapshot backend output file")
	fs.IntVar(&o.frames, "frames", 1, "snapshot backend frame count")
	fs.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&o.cpuProfile, "cpuprofile", "", "write a CPU profile to this file")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return o, fs, nil
}

// apply copies the flags given on the command line over the config.
func (o *options) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "level":
			cfg.World.Level = o.level
		case "levels":
			cfg.World.LevelsDir = o.levelsDir
		case "minimap":
			cfg.Minimap.Enabled = o.minimap
		case "workers":
			cfg.Render.Workers = o.workers
		case "log-level":
			cfg.Log.Level = o.logLevel
		}
	})
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	opts.apply(fs, cfg)

	log, err := logging.New(cfg.Log.Level, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level: %v\n", err)
		os.Exit(1)
	}

	if opts.listLevels {
		if err := listLevels(cfg.World.LevelsDir); err != nil {
			log.Fatalf("Failed to list levels: %v", err)
		}
		return
	}

	if err := run(opts, cfg, log); err != nil {
		fatal(log, err)
	}
}

func run(opts *options, cfg *config.Config, log *logrus.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if opts.cpuProfile != "" {
		f, err := os.Create(opts.cpuProfile)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	level, err := loadLevel(cfg.World.Level, cfg.World.LevelsDir)
	if err != nil {
		return err
	}
	log.WithField("level", level.Grid.Name()).Info("Level loaded.")

	newBackend, ok := backends[opts.backend]
	if !ok {
		return fmt.Errorf("%w: unknown backend %q (have %s)", config.ErrInvalid, opts.backend, strings.Join(backendNames(), ", "))
	}
	engine, input, err := newBackend(cfg, opts, log)
	if err != nil {
		return err
	}

	g, err := game.New(cfg, level, input, log)
	if err != nil {
		return err
	}
	manager := game.NewManager(g, input, log)

	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(true)

	log.WithField("backend", opts.backend).Info("Starting game...")
	if err := engine.RunGame(manager); err != nil && !errors.Is(err, render.ErrQuit) {
		return err
	}
	return nil
}

// loadLevel resolves a level name or path. An empty name selects the
// built-in demo.
func loadLevel(name, dir string) (*grid.Level, error) {
	if name == "" {
		return &grid.Level{Grid: grid.Demo()}, nil
	}
	if strings.HasSuffix(name, ".json") || strings.ContainsRune(name, filepath.Separator) {
		return grid.LoadLevel(name)
	}

	entries, err := levels.ScanDirectory(dir)
	if err != nil {
		return nil, err
	}
	entry, ok := levels.Find(entries, name)
	if !ok {
		return nil, fmt.Errorf("level %q not found in %s", name, dir)
	}
	return grid.LoadLevel(entry.Path)
}

func listLevels(dir string) error {
	entries, err := levels.ScanDirectory(dir)
	if err != nil {
		return err
	}
	fmt.Println("demo (built-in)")
	for _, e := range entries {
		fmt.Printf("%s\t%s\n", e.Name, e.Path)
	}
	return nil
}

// fatal reports a startup or run failure by kind and exits.
func fatal(log *logrus.Logger, err error) {
	switch {
	case errors.Is(err, config.ErrInvalid):
		log.Fatalf("Invalid configuration: %v", err)
	case errors.Is(err, player.ErrInvalidSettings):
		log.Fatalf("Invalid movement settings: %v", err)
	case errors.Is(err, grid.ErrStartInWall), errors.Is(err, grid.ErrNoRespawnCell):
		log.Fatalf("Invalid start position: %v", err)
	case errors.Is(err, grid.ErrNotSquare), errors.Is(err, grid.ErrNotPowerOfTwo),
		errors.Is(err, grid.ErrTooSmall), errors.Is(err, grid.ErrBadCell):
		log.Fatalf("Invalid level grid: %v", err)
	case errors.Is(err, raycast.ErrDegenerateStep), errors.Is(err, raycast.ErrBadViewport):
		log.Fatalf("Failed to build angle tables: %v", err)
	case errors.Is(err, render.ErrSurfaceInit):
		log.Fatalf("Failed to initialize drawing surface: %v", err)
	case errors.Is(err, render.ErrInputInit):
		log.Fatalf("Failed to initialize input: %v", err)
	default:
		log.Fatal(err)
	}
}
