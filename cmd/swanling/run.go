package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/cuemby/swanling/pkg/issuer"
	"github.com/cuemby/swanling/pkg/log"
	"github.com/cuemby/swanling/pkg/metrics"
	"github.com/cuemby/swanling/pkg/runconfig"
	"github.com/cuemby/swanling/pkg/runstore"
	"github.com/cuemby/swanling/pkg/samplebus"
	"github.com/cuemby/swanling/pkg/scenario"
	"github.com/cuemby/swanling/pkg/scheduler"
	"github.com/cuemby/swanling/pkg/types"
	"github.com/spf13/cobra"

	swanlingreport "github.com/cuemby/swanling/pkg/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a load test attack",
	Long: `Run drives an HTTP load test against --host with --users virtual
users, ramping up at --hatch-rate users/sec, and writes a report when the
run ends (--run-time elapsed, or Ctrl+C).`,
	RunE: runAttack,
}

func init() {
	runCmd.Flags().String("config", "", "Path to a YAML config file (overridden by flags below when set)")
	runCmd.Flags().String("host", "", "Base URL of the target host (required unless set in --config)")
	runCmd.Flags().Int("users", 1, "Number of virtual users")
	runCmd.Flags().Float64("hatch-rate", 1, "Virtual users to start per second")
	runCmd.Flags().String("run-time", "", "Stop after this long (e.g. 30s, 5m); empty runs until Ctrl+C")
	runCmd.Flags().String("co-mitigation", "disabled", "Coordinated omission mitigation policy: disabled|average|minimum|maximum")
	runCmd.Flags().StringSlice("task", []string{""}, "Task path to request, optionally PATH:WEIGHT; repeatable")
	runCmd.Flags().Bool("verbose", false, "Tee INFO-level logs to stderr, including slow-request notices")
	runCmd.Flags().String("report-file", "", "Write the JSON report to this path in addition to stdout")
	runCmd.Flags().String("data-dir", "./swanling-data", "Directory for the persisted run store")
	runCmd.Flags().String("metrics-addr", "", "If set, serve live Prometheus metrics on this address (e.g. 127.0.0.1:9090)")
}

func runAttack(cmd *cobra.Command, args []string) error {
	cfg, err := resolveRunConfig(cmd)
	if err != nil {
		return err
	}

	closeLog, err := configureLogging(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	tasks, _ := cmd.Flags().GetStringSlice("task")
	registry, err := buildRegistry(tasks)
	if err != nil {
		return err
	}

	runTime, err := cfg.RunTimeDuration()
	if err != nil {
		return fmt.Errorf("invalid run-time: %w", err)
	}

	httpIssuer := issuer.New(cfg.Host).WithTimeout(30 * time.Second)

	bus := samplebus.New()
	bus.Start()
	defer bus.Stop()

	agg := metrics.NewAggregatorState()
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)
	go func() {
		for msg := range sub {
			agg.Record(msg.Sample, msg.Target)
		}
	}()

	metrics.RegisterComponent("aggregator", true, "running")
	metrics.RegisterComponent("issuer", true, "running")

	if cfg.RequestLog != "" {
		logFile, err := os.OpenFile(cfg.RequestLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open request-log: %w", err)
		}
		defer logFile.Close()

		requestSub := bus.Subscribe()
		defer bus.Unsubscribe(requestSub)
		enc := json.NewEncoder(logFile)
		go func() {
			for msg := range requestSub {
				_ = enc.Encode(msg.Sample)
			}
		}()
	}

	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		metrics.SetVersion(Version)

		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			mux.Handle("/health", metrics.HealthHandler())
			mux.Handle("/ready", metrics.ReadyHandler())
			mux.Handle("/live", metrics.LivenessHandler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Error(fmt.Sprintf("metrics server error: %v", err))
			}
		}()
		exporter := metrics.NewPromExporter(agg, time.Second)
		exporter.Start()
		defer exporter.Stop()
		fmt.Printf("Metrics: http://%s/metrics (health: /health, /ready, /live)\n", addr)
	}

	sched := scheduler.New(scheduler.Config{
		Registry:      registry,
		Issuer:        httpIssuer,
		Bus:           bus,
		CadencePolicy: cfg.CadencePolicy(),
		Users:         cfg.Users,
		HatchRate:     cfg.HatchRate,
		RunTime:       runTime,
	})

	startedAt := time.Now()
	fmt.Printf("Swanling attacking %s with %d users (hatch rate %.2f/s)\n", cfg.Host, cfg.Users, cfg.HatchRate)
	sched.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	if runTime > 0 {
		select {
		case <-time.After(runTime):
		case <-sigCh:
			fmt.Println("\nInterrupted, stopping...")
		}
	} else {
		<-sigCh
		fmt.Println("\nInterrupted, stopping...")
	}

	sched.Stop()
	elapsed := time.Since(startedAt)

	rpt := swanlingreport.Build(agg.Snapshot(), elapsed)
	fmt.Println()
	fmt.Println(rpt.Render())

	dataDir, _ := cmd.Flags().GetString("data-dir")
	if err := persistRun(dataDir, cfg, startedAt, rpt); err != nil {
		log.Error(fmt.Sprintf("failed to persist run: %v", err))
	}

	if reportFile := cfg.ReportFile; reportFile != "" {
		if err := writeJSONReport(reportFile, rpt); err != nil {
			return fmt.Errorf("failed to write report file: %w", err)
		}
	}

	return nil
}

// configureLogging re-initializes the global logger once the run's config
// has been resolved, routing output through cfg.SwanlingLog when set (the
// --log-level/--log-json flags set at process start still apply). The
// cobra.OnInitialize hook in main.go runs before --config is loaded, so it
// cannot see SwanlingLog itself; this is the second, config-aware pass.
// Returns a closer for the opened log file, a no-op when SwanlingLog is unset.
func configureLogging(cmd *cobra.Command, cfg runconfig.Config) (func() error, error) {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logJSON, _ := cmd.Flags().GetBool("log-json")

	var output io.Writer = os.Stdout
	closeFn := func() error { return nil }
	if cfg.SwanlingLog != "" {
		f, err := os.OpenFile(cfg.SwanlingLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open swanling-log: %w", err)
		}
		output = f
		closeFn = f.Close
	}

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
		Output:     output,
		Verbose:    cfg.Verbose,
	})

	slowWriter := output
	if cfg.Verbose {
		slowWriter = io.MultiWriter(output, os.Stderr)
	}
	log.SlowRequestWriter = slowWriter

	return closeFn, nil
}

// resolveRunConfig loads a config file if --config was given, then applies
// any flags the user explicitly set on top, the way warren's CLI layers
// flag overrides onto a loaded resource.
func resolveRunConfig(cmd *cobra.Command) (runconfig.Config, error) {
	var cfg runconfig.Config
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		loaded, err := runconfig.Load(configPath)
		if err != nil {
			return runconfig.Config{}, err
		}
		cfg = loaded
	} else {
		cfg = runconfig.Default()
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("users") {
		cfg.Users, _ = flags.GetInt("users")
	}
	if flags.Changed("hatch-rate") {
		cfg.HatchRate, _ = flags.GetFloat64("hatch-rate")
	}
	if flags.Changed("run-time") {
		cfg.RunTime, _ = flags.GetString("run-time")
	}
	if flags.Changed("co-mitigation") {
		cfg.CoMitigation, _ = flags.GetString("co-mitigation")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("report-file") {
		cfg.ReportFile, _ = flags.GetString("report-file")
	}

	return cfg, cfg.Validate()
}

// buildRegistry turns --task entries ("path" or "path:weight") into a
// single-sequence Registry. Script-level task sequencing is out of scope;
// this is the minimal CLI surface over pkg/scenario's selection algorithm.
func buildRegistry(taskFlags []string) (*scenario.Registry, error) {
	var tasks []types.Task
	for _, raw := range taskFlags {
		name, weight := raw, 1
		if idx := strings.LastIndex(raw, ":"); idx != -1 {
			if w, err := strconv.Atoi(raw[idx+1:]); err == nil {
				name, weight = raw[:idx], w
			}
		}
		tasks = append(tasks, types.Task{Name: name, Weight: weight})
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("at least one --task is required")
	}

	registry := scenario.NewRegistry()
	registry.Register(types.TaskSequence{Name: "default", Tasks: tasks}, 1)
	return registry, nil
}

func persistRun(dataDir string, cfg runconfig.Config, startedAt time.Time, rpt swanlingreport.Report) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	store, err := runstore.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Save(runstore.Record{
		StartedAt: startedAt,
		Host:      cfg.Host,
		Report:    rpt,
	})
	return err
}

func writeJSONReport(path string, rpt swanlingreport.Report) error {
	data, err := rpt.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
