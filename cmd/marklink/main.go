package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"marklink/internal/config"
	"marklink/internal/index"
	"marklink/internal/lsp"
	"marklink/internal/nls"
	"marklink/internal/scheduler"
	"marklink/internal/workspace"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"marklink.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`
	LogFile string `help:"Append logs to this file in addition to stderr"`

	Serve struct{} `cmd:"" default:"1" help:"Run the language server on stdio"`

	Scan struct{} `cmd:"" help:"Index the workspace once and exit"`
}

func main() {
	ctx := kong.Parse(&CLI)

	verbosity := 1
	if CLI.Verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	if CLI.LogFile != "" {
		logFile, err := os.OpenFile(CLI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, logFile))
		log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Failed to determine working directory: %v", err)
		}
		cfg.Root = cwd
	}
	nls.Override(cfg.Messages)

	switch ctx.Command() {
	case "serve":
		if err := runServe(cfg); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case "scan":
		if err := runScan(cfg); err != nil {
			log.Fatalf("Scan error: %v", err)
		}
	}
}

func runServe(cfg config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(16)
	go sched.Run(ctx)

	scanner := index.NewScanner(store, cfg.Root, cfg.Extensions, cfg.IgnoreDirs)
	sched.Schedule(scheduler.Task{
		Name: "scan:initial",
		Execute: func() error {
			_, err := scanner.Scan(ctx)
			return err
		},
	})

	headings := index.NewHeadings(store)
	watcher, err := workspace.NewWatcher(cfg.Root, func(path string, removed bool) {
		sched.Schedule(scheduler.Task{
			Name: "refresh:" + path,
			Execute: func() error {
				headings.Invalidate(path)
				if removed {
					err := store.DeleteFile(path)
					if err == index.ErrNotFound {
						return nil
					}
					return err
				}
				_, err := scanner.Scan(ctx)
				return err
			},
		})
	})
	if err != nil {
		return fmt.Errorf("failed to watch workspace: %w", err)
	}
	go watcher.Run(ctx)

	log.Println("Starting marklink LSP server...")
	return lsp.NewServer(cfg, store).RunStdio()
}

func runScan(cfg config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	scanner := index.NewScanner(store, cfg.Root, cfg.Extensions, cfg.IgnoreDirs)
	stats, err := scanner.Scan(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("scanned %d files (%d updated, %d removed) under %s\n",
		stats.Scanned, stats.Updated, stats.Removed, cfg.Root)
	return nil
}

func openStore(cfg config.Config) (*index.Store, error) {
	path := cfg.StorePath
	if path == "" {
		path = ":memory:"
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return index.NewStore(path)
}
