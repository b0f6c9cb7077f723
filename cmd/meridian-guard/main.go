// Package main provides the meridian-guard tool: capability probing,
// a live demonstration of guard-band stack growth, and a small
// diagnostics server for inspecting zone state during development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"unsafe"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-lang/meridian/internal/cli"
	"github.com/meridian-lang/meridian/internal/runtime/memguard"
	"github.com/meridian-lang/meridian/internal/runtime/memzone"
)

var commands = []cli.CommandInfo{
	{Name: "probe", Description: "Report the fault-handling capability surface"},
	{Name: "demo", Description: "Grow a real guarded stack zone by faulting into it"},
	{Name: "serve", Description: "Run the zone diagnostics HTTP server"},
	{Name: "version", Description: "Show version information"},
	{Name: "help", Description: "Show this help"},
}

func main() {
	if len(os.Args) < 2 {
		cli.PrintUsage("meridian-guard", commands)
		os.Exit(1)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	switch sub {
	case "help", "-h", "--help":
		cli.PrintUsage("meridian-guard", commands)
	case "version", "-v", "--version":
		jsonOutput := false
		for _, arg := range args {
			if arg == "--json" || arg == "-j" {
				jsonOutput = true
				break
			}
		}
		cli.PrintVersion("meridian-guard", jsonOutput)
	case "probe":
		if err := runProbe(args); err != nil {
			cli.ExitWithError("%v", err)
		}
	case "demo":
		if err := runDemo(args); err != nil {
			cli.ExitWithError("%v", err)
		}
	case "serve":
		if err := runServe(args); err != nil {
			cli.ExitWithError("%v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", sub)
		cli.PrintUsage("meridian-guard", commands)
		os.Exit(1)
	}
}

func runProbe(args []string) error {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "emit the report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	caps := memguard.Probe()
	if *jsonOut {
		data, err := json.MarshalIndent(caps, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("page size:       0x%x\n", caps.PageSize)
	fmt.Printf("page protection: %v\n", caps.Protection)
	fmt.Printf("location dumps:  %v\n", caps.GuardDebug)
	if caps.KernelRelease != "" {
		fmt.Printf("kernel release:  %s\n", caps.KernelRelease)
	}
	fmt.Printf("strategies:")
	for _, s := range caps.Strategies {
		fmt.Printf(" %s", s)
	}
	fmt.Println()
	return nil
}

func runDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	size := fs.Uint64("size", 1<<20, "zone size in bytes")
	accessible := fs.Uint64("accessible", 64<<10, "initially accessible bytes")
	verbose := fs.Bool("verbose", true, "verbose fault diagnostics")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := memguard.NewLogger(*verbose)
	reg := memzone.NewRegistry()
	hist := memguard.NewHistoryRing(256)

	z, err := memzone.NewZone("detstack", 0, uintptr(*size), uintptr(*accessible), &memguard.DefaultPolicy{})
	if err != nil {
		return err
	}
	defer z.Close()
	if err := reg.Register(z); err != nil {
		return err
	}
	log.Info().Str("zone", z.Label()).
		Uint64("min", uint64(z.Min)).Uint64("redzone", uint64(z.Redzone)).
		Uint64("hardmax", uint64(z.Hardmax)).Msg("zone registered")

	if z.Redzone == z.Top {
		log.Warn().Msg("no guard band on this target; nothing to demonstrate")
		return nil
	}

	memguard.SetupSignal(reg, memguard.Options{
		Strategy: memguard.StrategySiginfo,
		Verbose:  *verbose,
		Reporter: hist,
	})

	hist.Record("demo.grow")
	before := z.Redzone
	target := z.Redzone + memzone.WordSize
	memguard.Guarded(func() {
		*(*byte)(unsafe.Pointer(target)) = 1
	})

	log.Info().Uint64("old_redzone", uint64(before)).
		Uint64("new_redzone", uint64(z.Redzone)).
		Msg("guard band fault absorbed; zone grew")
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML config file to load and watch")
	addr := fs.String("addr", "127.0.0.1:6070", "debug HTTP listen address")
	zones := fs.Int("zones", 2, "sample guarded zones to bring up")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := memguard.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = memguard.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	if cfg.DebugHTTPAddr != "" {
		*addr = cfg.DebugHTTPAddr
	}

	log := memguard.NewLogger(cfg.Verbose)
	reg := memzone.NewRegistry()
	hist := memguard.NewHistoryRing(cfg.HistorySize)

	strat, err := memguard.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}

	for i := 0; i < *zones; i++ {
		z, zerr := memzone.NewZone("detstack", i, 1<<20, 64<<10, &memguard.DefaultPolicy{})
		if zerr != nil {
			return zerr
		}
		defer z.Close()
		if zerr := reg.Register(z); zerr != nil {
			return zerr
		}
		log.Debug().Str("zone", z.Label()).Msg("sample zone registered")
	}

	memguard.SetupSignal(reg, memguard.Options{
		Strategy: strat,
		Verbose:  cfg.Verbose,
		Reporter: hist,
	})

	bound, shutdown, err := memguard.StartDebugHTTP(reg, hist, *addr)
	if err != nil {
		return err
	}
	log.Info().Str("addr", bound).Msg("debug HTTP listening")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	if *configPath != "" {
		g.Go(func() error {
			return memguard.WatchConfig(ctx, *configPath, log, func(c memguard.Config) {
				memguard.SetVerbose(c.Verbose)
			})
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		return shutdown(context.Background())
	})

	err = g.Wait()
	log.Info().Msg("shutting down")
	return err
}
