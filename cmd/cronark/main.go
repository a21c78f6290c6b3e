package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cronark/cronark/internal/api"
	"github.com/cronark/cronark/internal/config"
	"github.com/cronark/cronark/internal/doctor"
	"github.com/cronark/cronark/internal/job"
	"github.com/cronark/cronark/internal/log"
	"github.com/cronark/cronark/internal/proc"
	"github.com/cronark/cronark/internal/registry"
	"github.com/cronark/cronark/internal/scheduler"
	"github.com/cronark/cronark/internal/state"
	"github.com/cronark/cronark/internal/storage"
	"github.com/cronark/cronark/internal/trigger"
)

const version = "0.2.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "worker":
		os.Exit(runWorkerNoun(args))
	case "config":
		os.Exit(runConfigNoun(args))
	case "system":
		os.Exit(runSystemNoun(args))
	case "version":
		fmt.Printf("cronark version %s\n", version)
		os.Exit(0)
	case "help", "--help", "-h":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`cronark - circular background-job runner for cron-driven hosts

Usage:
  cronark <noun> <action> [flags]

Worker Commands:
  worker start      Run one worker's job loop in the foreground
  worker status     Show persisted state for every worker
  worker kill       Terminate the process owning a worker
  worker killall    Terminate every worker's owning process

Config Commands:
  config check      Validate configuration

System Commands:
  system run        Run the built-in trigger daemon (and status API)

General:
  version           Show version information
  help              Show this help message
`)
}

// --- NOUN DISPATCHERS ---

func runWorkerNoun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "worker requires an action: start, status, kill, killall")
		return 1
	}
	action := args[0]
	actionArgs := args[1:]

	switch action {
	case "start":
		return runWorkerStart(actionArgs)
	case "status":
		return runWorkerStatus(actionArgs)
	case "kill":
		return runWorkerKill(actionArgs, false)
	case "killall":
		return runWorkerKill(actionArgs, true)
	default:
		fmt.Fprintf(os.Stderr, "Unknown worker action: %s\n", action)
		return 1
	}
}

func runConfigNoun(args []string) int {
	if len(args) < 1 || args[0] != "check" {
		fmt.Fprintln(os.Stderr, "config requires an action: check")
		return 1
	}
	return runConfigCheck(args[1:])
}

func runSystemNoun(args []string) int {
	if len(args) < 1 || args[0] != "run" {
		fmt.Fprintln(os.Stderr, "system requires an action: run")
		return 1
	}
	return runSystemRun(args[1:])
}

// --- ACTIONS ---

func runWorkerStart(args []string) int {
	fs := flag.NewFlagSet("worker start", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	name := fs.String("name", "", "worker name (required)")
	iterations := fs.Int("iterations", 0, "stop after N iterations (0 = run until superseded)")
	_ = fs.Parse(args)

	if *name == "" {
		fmt.Fprintln(os.Stderr, "worker start requires --name")
		return 1
	}

	rt, err := buildRuntime(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := rt.newScheduler(*name, *iterations)
	// Start never raises; duplicate and abort conditions are silent
	// success so the cron trigger doesn't alarm on them.
	sched.Start(ctx, *name)
	return 0
}

func runWorkerStatus(args []string) int {
	fs := flag.NewFlagSet("worker status", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	asJSON := fs.Bool("json", false, "emit JSON")
	_ = fs.Parse(args)

	rt, err := buildRuntime(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer rt.close()

	ctx := context.Background()
	type row struct {
		Worker       string `json:"worker"`
		Jobs         int    `json:"jobs"`
		HashChanged  bool   `json:"hash_changed"`
		CurrentIndex *int   `json:"current_index"`
		Pid          *int   `json:"pid"`
		Alive        bool   `json:"process_alive"`
	}
	var rows []row
	for _, w := range rt.registry.Workers() {
		changed, err := rt.access.HashChanged(ctx, w)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		idx, err := rt.access.CurrentIndex(ctx, w)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		pid, err := rt.access.Pid(ctx, w)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		rows = append(rows, row{
			Worker:       w,
			Jobs:         rt.registry.Count(w),
			HashChanged:  changed,
			CurrentIndex: idx,
			Pid:          pid,
			Alive:        pid != nil && rt.monitor.Exists(*pid),
		})
	}

	if *asJSON {
		out, _ := json.MarshalIndent(rows, "", "  ")
		fmt.Println(string(out))
		return 0
	}
	fmt.Printf("%-20s %5s %8s %7s %8s %6s\n", "WORKER", "JOBS", "CHANGED", "INDEX", "PID", "ALIVE")
	for _, r := range rows {
		idx, pid := "-", "-"
		if r.CurrentIndex != nil {
			idx = fmt.Sprintf("%d", *r.CurrentIndex)
		}
		if r.Pid != nil {
			pid = fmt.Sprintf("%d", *r.Pid)
		}
		fmt.Printf("%-20s %5d %8t %7s %8s %6t\n", r.Worker, r.Jobs, r.HashChanged, idx, pid, r.Alive)
	}
	return 0
}

func runWorkerKill(args []string, all bool) int {
	fs := flag.NewFlagSet("worker kill", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	name := fs.String("name", "", "worker name")
	_ = fs.Parse(args)

	rt, err := buildRuntime(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer rt.close()

	ctx := context.Background()
	sched := rt.newScheduler("", 0)

	if all {
		killed := sched.KillAll(ctx)
		fmt.Printf("terminated %d worker(s)\n", killed)
		return 0
	}

	if *name == "" {
		fmt.Fprintln(os.Stderr, "worker kill requires --name (or use killall)")
		return 1
	}
	ok, err := sched.Kill(ctx, *name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if !ok {
		fmt.Printf("worker %q has no live owner or could not be terminated\n", *name)
		return 1
	}
	fmt.Printf("worker %q terminated\n", *name)
	return 0
}

func runConfigCheck(args []string) int {
	fs := flag.NewFlagSet("config check", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	asJSON := fs.Bool("json", false, "emit JSON")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	result := doctor.New(cfg).Validate()
	if *asJSON {
		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))
	} else {
		for _, e := range result.Errors {
			fmt.Printf("ERROR   [%s] %s: %s\n", e.Category, e.Field, e.Message)
		}
		for _, w := range result.Warnings {
			fmt.Printf("WARNING [%s] %s: %s\n", w.Category, w.Field, w.Message)
		}
		if result.Valid {
			fmt.Println("Configuration OK")
		}
	}
	if !result.Valid {
		return 1
	}
	return 0
}

func runSystemRun(args []string) int {
	fs := flag.NewFlagSet("system run", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	_ = fs.Parse(args)

	rt, err := buildRuntime(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	daemon := trigger.New(rt.cfg, func(worker string) trigger.Runner {
		return rt.newScheduler(worker, 0)
	}, log.WithComponent("trigger"))
	if err := daemon.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer daemon.Stop()

	if rt.cfg.API.Enabled {
		srv := api.New(api.Config{Listen: rt.cfg.API.Listen}, rt.registry, rt.access, rt.monitor, log.WithComponent("api"))
		go func() {
			if err := srv.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error("status API failed", "error", err)
			}
		}()
	}

	<-ctx.Done()
	return 0
}

// --- RUNTIME WIRING ---

type runtimeDeps struct {
	cfg      *config.Config
	db       *sql.DB
	registry *registry.Registry
	access   *state.Access
	monitor  *proc.Monitor
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		discovered, err := config.Discover()
		if err != nil {
			return nil, err
		}
		path = discovered
	}
	return config.Load(path)
}

func buildRuntime(configPath string) (*runtimeDeps, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	log.Setup(cfg.Service.LogLevel, cfg.Service.LogFormat)

	db, err := storage.OpenSQLite(context.Background(), cfg.State.Path)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	for name, wc := range cfg.Workers {
		reg.Register(name)
		for _, jc := range wc.Jobs {
			reg.Add(name, jc.Name)
		}
	}

	store := state.NewStore(db)
	return &runtimeDeps{
		cfg:      cfg,
		db:       db,
		registry: reg,
		access:   state.NewAccess(store, reg),
		monitor:  proc.New(),
	}, nil
}

// newScheduler wires a fresh scheduler with exec-job factories for every
// configured job. One instance per worker start, like an external cron
// invocation.
func (rt *runtimeDeps) newScheduler(worker string, maxIterations int) *scheduler.Scheduler {
	delay := rt.cfg.DelayFor(worker)
	if delay == 0 {
		// Options treats zero as "use the default"; a configured zero
		// means no pause at all.
		delay = -1
	}
	sched := scheduler.New(rt.registry, rt.access, rt.monitor, scheduler.Options{
		Delay:         delay,
		MaxIterations: maxIterations,
	})
	for _, wc := range rt.cfg.Workers {
		for _, jc := range wc.Jobs {
			sched.RegisterFactory(jc.Name, job.ExecFactory(jc))
		}
	}
	return sched
}

func (rt *runtimeDeps) close() {
	_ = rt.db.Close()
}
