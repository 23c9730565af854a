package command

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/betlink-go/internal/cli/config"
	"github.com/yndnr/betlink-go/internal/cli/output"
	"github.com/yndnr/betlink-go/internal/infra/buildinfo"
	"github.com/yndnr/betlink-go/internal/telemetry/logger"
)

// App builds the betlink-cli application.
func App() *cli.App {
	return &cli.App{
		Name:    "betlink-cli",
		Usage:   "Betting exchange command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			marketCommand(),
			bookCommand(),
			orderCommand(),
			sessionCommand(),
			configCommand(),
			shellCommand(),
			versionCommand(),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to the configuration file",
			EnvVars: []string{"BETLINK_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (table, json)",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "show additional columns in table output",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level (debug, info, warn, error)",
		},
	}
}

// loadConfig loads the configuration honoring the --config and
// --log-level flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	lc := logger.DefaultConfig()
	lc.Level = cfg.Log.Level
	lc.Format = cfg.Log.Format
	return logger.New(lc)
}

func formatter(c *cli.Context) (output.Formatter, error) {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(format, c.Bool("wide")), nil
}

func render(c *cli.Context, data any) error {
	f, err := formatter(c)
	if err != nil {
		return err
	}
	return f.Format(c.App.Writer, data)
}
