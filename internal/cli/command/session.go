package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/betlink-go/internal/cli/config"
	"github.com/yndnr/betlink-go/internal/infra/shutdown"
	"github.com/yndnr/betlink-go/internal/infra/tlsroots"
	"github.com/yndnr/betlink-go/internal/telemetry/logger"
	"github.com/yndnr/betlink-go/pkg/betting"
	"github.com/yndnr/betlink-go/pkg/exchange"
)

// shutdownGracePeriod bounds hook execution when the keepalive
// command is interrupted.
const shutdownGracePeriod = 10 * time.Second

// session bundles an authenticated client with its cleanup.
type session struct {
	client  *exchange.Client
	betting *betting.Service
	cleanup func()
}

func (s *session) close() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

// newSession builds an exchange client from the loaded configuration.
// The caller must close the returned session.
func newSession(c *cli.Context) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	creds, err := buildCredentials(&cfg.Session)
	if err != nil {
		return nil, err
	}

	gwCfg := exchange.GatewayConfig{
		Endpoints: exchange.Endpoints{
			Exchange:  cfg.Exchange.RPCURL,
			CertLogin: cfg.Exchange.LoginURL,
			KeepAlive: cfg.Exchange.KeepAliveURL,
		},
		ProxyURL:          cfg.Exchange.ProxyURL,
		Timeout:           cfg.Exchange.Timeout,
		RequestsPerSecond: cfg.Exchange.RequestsPerSecond,
		Burst:             cfg.Exchange.Burst,
		Logger:            log,
	}

	if cfg.Exchange.CAFile != "" {
		pool := tlsroots.NewEmptyPool()
		if err := pool.AddCertFile(cfg.Exchange.CAFile); err != nil {
			return nil, fmt.Errorf("loading CA file: %w", err)
		}
		gwCfg.RootCAs = pool.Pool()
	}

	var watcher *tlsroots.Watcher
	if cfg.Session.CertPEMFile != "" {
		watcher, err = tlsroots.NewWatcher(cfg.Session.CertPEMFile, cfg.Session.KeyPEMFile,
			tlsroots.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("loading client certificate: %w", err)
		}
		watcher.StartAsync()
		gwCfg.ClientCertificate = watcher.GetClientCertificate
	}

	gw, err := exchange.NewHTTPGateway(creds, gwCfg)
	if err != nil {
		if watcher != nil {
			watcher.Stop()
		}
		return nil, err
	}

	client := exchange.New(creds, gw,
		exchange.WithLogger(log),
		exchange.WithKeepAliveInterval(cfg.Session.KeepAliveInterval),
		exchange.WithLoginRetryDelay(cfg.Session.LoginRetryDelay),
	)

	return &session{
		client:  client,
		betting: betting.NewService(client),
		cleanup: func() {
			client.Close()
			if watcher != nil {
				watcher.Stop()
			}
		},
	}, nil
}

// buildCredentials assembles login credentials from the session section.
// A PKCS#12 bundle takes the identity when configured; otherwise the
// identity comes from the watched PEM pair on the gateway.
func buildCredentials(cfg *config.SessionSection) (*exchange.Credentials, error) {
	if cfg.CertBundleFile != "" {
		return exchange.CredentialsFromFile(cfg.Username, cfg.Password, cfg.CertBundleFile, cfg.AppKey)
	}
	if cfg.CertPEMFile == "" {
		return nil, errors.New("no client certificate configured: set session.cert_bundle_file or session.cert_pem_file")
	}
	return exchange.NewCredentials(cfg.Username, cfg.Password, nil, cfg.AppKey)
}

func sessionCommand() *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Session management",
		Subcommands: []*cli.Command{
			{
				Name:   "ping",
				Usage:  "Log in and verify the session with a round trip",
				Action: sessionPingAction,
			},
			{
				Name:   "keepalive",
				Usage:  "Hold a session open until interrupted",
				Action: sessionKeepAliveAction,
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "grace",
						Usage: "shutdown grace period",
						Value: shutdownGracePeriod,
					},
				},
			},
		},
	}
}

func sessionPingAction(c *cli.Context) error {
	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	// A listEventTypes round trip exercises login, the session token
	// and the RPC endpoint in one call.
	if _, err := sess.betting.ListEventTypes(c.Context, betting.MarketFilter{}, ""); err != nil {
		return fmt.Errorf("session check failed: %w", err)
	}

	return render(c, map[string]any{
		"status": "ok",
		"token":  logger.MaskToken(sess.client.SessionToken()),
	})
}

func sessionKeepAliveAction(c *cli.Context) error {
	sess, err := newSession(c)
	if err != nil {
		return err
	}
	defer sess.close()

	// Establish the session up front so the keep-alive loop has a
	// token to maintain.
	if _, err := sess.betting.ListEventTypes(c.Context, betting.MarketFilter{}, ""); err != nil {
		return fmt.Errorf("establishing session: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "session established, keeping alive (Ctrl-C to stop)")

	handler := shutdown.NewHandler(c.Duration("grace"))
	handler.OnShutdown(func(context.Context) error {
		return sess.client.Close()
	})
	return handler.Wait()
}
