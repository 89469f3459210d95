package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"clarion/internal/alarm"
	"clarion/internal/audio"
	"clarion/internal/bank"
	"clarion/internal/cli"
	"clarion/internal/clock"
	"clarion/internal/db"
	"clarion/internal/device"
	"clarion/internal/genai"
	"clarion/internal/pool"
	"clarion/internal/question"
	"clarion/internal/scheduler"
	"clarion/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.clarion/clarion.db
	dbPath := os.Getenv("CLARION_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".clarion", "clarion.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	alarmStore := storage.NewAlarmStore(database)
	settingsStore := storage.NewSettingsStore(database)
	statsStore := storage.NewStatsStore(database)
	poolStore := storage.NewPoolStore(database)
	setStore := storage.NewQuestionSetStore(database)

	clk := clock.System{}
	catalog := bank.Default()

	// Wire the generator adapter (only when generation is enabled)
	var adapter *genai.Adapter
	llmCfg := genai.LoadConfig()
	if llmCfg.Enabled {
		var observer genai.Observer = genai.NoopObserver{}
		if llmCfg.LogCalls {
			observer = genai.NewLogObserver(os.Stderr)
		}
		engine := genai.NewHTTPEngine(llmCfg)
		adapter = genai.NewAdapter(engine, llmCfg, observer, device.HostProber{})
	}

	var completer question.Completer
	var unloader pool.Unloader
	if adapter != nil {
		completer = adapter
		unloader = adapter
	}
	generator := question.NewGenerator(completer, catalog)
	poolMgr := pool.NewManager(poolStore, catalog, generator, unloader, clk)

	sched := scheduler.New(
		scheduler.NewLogNative(os.Stderr),
		scheduler.NewLogNotifier(os.Stderr),
		clk, os.Stderr)
	player := audio.NewLogPlayer(os.Stderr)

	app := &cli.App{
		Alarms:   alarm.NewService(alarmStore, settingsStore, setStore, sched, generator, clk),
		Sessions: alarm.NewSessionManager(alarmStore, settingsStore, statsStore, setStore, poolMgr, sched, player, clk, os.Stderr),
		Pool:     poolMgr,
		Model:    adapter,
		Settings: settingsStore,
		Stats:    statsStore,
		Clock:    clk,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
