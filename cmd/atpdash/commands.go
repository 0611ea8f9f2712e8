package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/courtside-labs/atp-dashboard/app"
	"github.com/courtside-labs/atp-dashboard/app/modules/matches"
	matchservice "github.com/courtside-labs/atp-dashboard/app/modules/matches/application"
	matchtypes "github.com/courtside-labs/atp-dashboard/app/modules/matches/domain"
	"github.com/courtside-labs/atp-dashboard/app/observability"
	"github.com/courtside-labs/atp-dashboard/config"
	"github.com/urfave/cli/v2"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func newCLIApp() *cli.App {
	return &cli.App{
		Name:    "atpdash",
		Usage:   "ATP season dashboard",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"ATPDASH_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "dataset",
				Usage: "override the dataset path from the configuration",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			statsCommand(),
			playersCommand(),
			countriesCommand(),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the dashboard over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "override the HTTP listen address"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if addr := c.String("addr"); addr != "" {
				cfg.HTTP.Address = addr
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			obs, err := initObservability(ctx, cfg, c.App.ErrWriter)
			if err != nil {
				return err
			}

			application, err := app.NewApp(ctx, cfg, obs)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Run(ctx)
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "print the dashboard summary for one player",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "player", Aliases: []string{"p"}, Required: true, Usage: "player name as it appears in winner_name"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "won", Usage: "won or lost"},
			&cli.BoolFlag{Name: "json", Usage: "print the full result as JSON"},
		},
		Action: func(c *cli.Context) error {
			mode, err := matchtypes.ParseMode(c.String("mode"))
			if err != nil {
				return err
			}
			svc, err := offlineService(c)
			if err != nil {
				return err
			}

			result, err := svc.ComputeStats(c.Context, c.String("player"), mode)
			if err != nil {
				return err
			}

			w := c.App.Writer
			if c.Bool("json") {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			for _, line := range matchservice.Summarize(result).Lines() {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
			if !result.Known {
				fmt.Fprintf(c.App.ErrWriter, "warning: %q never won a match in this dataset\n", result.Player)
			}
			return nil
		},
	}
}

func playersCommand() *cli.Command {
	return &cli.Command{
		Name:  "players",
		Usage: "list the selectable players",
		Action: func(c *cli.Context) error {
			svc, err := offlineService(c)
			if err != nil {
				return err
			}
			players, err := svc.Players(c.Context)
			if err != nil {
				return err
			}
			for _, p := range players {
				if _, err := fmt.Fprintln(c.App.Writer, p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func countriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "countries",
		Usage: "list match wins per country of origin",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "top", Usage: "only print the first N countries (0 prints all)"},
		},
		Action: func(c *cli.Context) error {
			svc, err := offlineService(c)
			if err != nil {
				return err
			}
			counts, err := svc.Countries(c.Context)
			if err != nil {
				return err
			}
			if top := c.Int("top"); top > 0 && len(counts) > top {
				counts = counts[:top]
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COUNTRY\tMATCHES WON")
			for _, cc := range counts {
				fmt.Fprintf(tw, "%s\t%d\n", cc.Country, cc.Matches)
			}
			return tw.Flush()
		},
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if ds := c.String("dataset"); ds != "" {
		cfg.Dataset.Path = ds
	}
	return cfg, nil
}

func initObservability(ctx context.Context, cfg *config.Config, logOutput io.Writer) (observability.Observability, error) {
	obsCfg := config.ToObsConfig(cfg)
	if cfg.Observability.Version == "" {
		obsCfg.Version = version
	}
	obsCfg.Output = logOutput
	obs, err := observability.Init(ctx, obsCfg)
	if err != nil {
		return observability.Observability{}, fmt.Errorf("failed to initialize observability: %w", err)
	}
	return obs, nil
}

// offlineService loads the dataset for one-shot commands. Logs go to the
// error writer at warn level so stdout carries only the answer.
func offlineService(c *cli.Context) (matchservice.Service, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	cfg.Observability.LogLevel = "warn"
	cfg.Observability.MetricsAddress = ""

	obs, err := initObservability(c.Context, cfg, c.App.ErrWriter)
	if err != nil {
		return nil, err
	}
	module, err := matches.NewModule(c.Context, cfg, obs, nil)
	if err != nil {
		return nil, err
	}
	return module.GetService(), nil
}
