// Command taskstats loads task statistics through the intent pipeline.
// By default it submits --loads initial intents, prints every state the
// screen would show and exits once the loads settle. With --serve it
// exposes the pipeline over HTTP until interrupted.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/taskstats/bootstrap"
	"github.com/kbukum/taskstats/component"
	"github.com/kbukum/taskstats/config"
	"github.com/kbukum/taskstats/idling"
	"github.com/kbukum/taskstats/logger"
	"github.com/kbukum/taskstats/observability"
	"github.com/kbukum/taskstats/scheduler"
	"github.com/kbukum/taskstats/server"
	"github.com/kbukum/taskstats/statistics"
	"github.com/kbukum/taskstats/task"
	"github.com/kbukum/taskstats/version"
)

type flags struct {
	configFile  string
	envFile     string
	loads       int
	serve       bool
	showVersion bool
}

func parseFlags(args []string, out io.Writer) (flags, error) {
	var f flags
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVarP(&f.configFile, "config", "c", "", "path to config.yml")
	fs.StringVar(&f.envFile, "env-file", "", "path to a .env file")
	fs.IntVarP(&f.loads, "loads", "n", 1, "number of initial intents to submit")
	fs.BoolVar(&f.serve, "serve", false, "serve the pipeline over HTTP")
	fs.BoolVarP(&f.showVersion, "version", "v", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.loads < 1 {
		return f, fmt.Errorf("--loads must be at least 1 (got: %d)", f.loads)
	}
	return f, nil
}

func main() {
	f, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if f.showVersion {
		fmt.Println(version.Get().String())
		return
	}
	if err := run(context.Background(), f); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	var cfg AppConfig
	if err := config.LoadConfig(serviceName, &cfg,
		config.WithConfigFile(f.configFile),
		config.WithEnvFile(f.envFile),
		config.WithEnvPrefix("TASKSTATS"),
	); err != nil {
		return err
	}
	opts := []bootstrap.Option{}
	if f.serve {
		cfg.Server.Enabled = true
	} else {
		// stdout belongs to the rendered states.
		cfg.Server.Enabled = false
		cfg.Logging.Output = "stderr"
		opts = append(opts, bootstrap.WithSummaryOutput(io.Discard))
	}
	app, err := bootstrap.NewApp(&cfg, opts...)
	if err != nil {
		return err
	}

	providers, err := observability.Setup(ctx, cfg.serviceInfo(), cfg.Metrics)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	app.OnStop(providers.Shutdown)

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return err
	}

	var out io.Writer
	if !f.serve {
		out = os.Stdout
	}
	p, err := wire(app, metrics, f.loads, out)
	if err != nil {
		return err
	}

	if f.serve {
		app.OnReady(func(ctx context.Context) error {
			return p.vm.Submit(ctx, statistics.InitialIntent{})
		})
		return app.Run(ctx)
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		return p.loadN(ctx, f.loads)
	})
}

// pipe is the wired statistics pipeline.
type pipe struct {
	vm      *statistics.ViewModel
	busy    *idling.Resource
	settled chan struct{}
}

// wire builds and registers every component. Registration order is start
// order; they stop in reverse. States are rendered to out when it is set.
func wire(app *bootstrap.App[*AppConfig], metrics *observability.Metrics, loads int, out io.Writer) (*pipe, error) {
	cfg := app.Cfg
	log := app.Logger

	source := task.NewComponent(cfg.Source, log)
	ioPool := scheduler.NewPool(cfg.Scheduler.PoolConfig(), log)
	uiLoop := scheduler.NewLoop("ui", log)

	p := &pipe{
		busy:    idling.New("statistics"),
		settled: make(chan struct{}, loads),
	}
	vmOpts := []statistics.Option{
		statistics.WithSchedulers(ioPool, uiLoop),
		statistics.WithLogger(log),
		statistics.WithMetrics(metrics),
	}
	// Observers run in order; settling is signalled last so a load counts
	// as done only after it is rendered and the idling resource released.
	if out != nil {
		vmOpts = append(vmOpts, statistics.WithStateObserver(newRenderer(out).Render))
	}
	vmOpts = append(vmOpts,
		statistics.WithIdlingResource(p.busy),
		statistics.WithStateObserver(p.observeSettled),
	)
	p.vm = statistics.New(source, vmOpts...)

	for _, c := range []component.Component{source, ioPool, uiLoop, p.vm} {
		if err := app.RegisterComponent(c); err != nil {
			return nil, err
		}
	}

	if cfg.Server.Enabled {
		srv := server.New(cfg.Server, log)
		srv.RegisterDefaultEndpoints(app.Name, app.Version, app.Components.HealthAll)
		srv.RegisterStatistics(p.vm)
		srv.TrackRoutes(app.Summary)
		if err := app.RegisterComponent(srv); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// observeSettled signals once for every load that finished, successfully
// or not.
func (p *pipe) observeSettled(s statistics.ViewState) {
	if s.IsLoading {
		return
	}
	select {
	case p.settled <- struct{}{}:
	default:
	}
}

// loadN submits n initial intents and waits until all of them settle.
func (p *pipe) loadN(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := p.vm.Submit(ctx, statistics.InitialIntent{}); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		select {
		case <-p.settled:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := p.busy.WaitForIdle(ctx); err != nil {
		return err
	}
	logger.Debug("Loads settled", logger.Fields("loads", n, "state", p.vm.State().String()))
	return p.vm.State().Err
}
