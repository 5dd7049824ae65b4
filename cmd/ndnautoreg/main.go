// Command ndnautoreg registers routes toward faces as they are created on an NDN forwarder.
package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/urfave/cli/v2"
	"github.com/usnistgov/ndn-autoreg/app/autoreg"
	"github.com/usnistgov/ndn-autoreg/core/gqlclient"
	"github.com/usnistgov/ndn-autoreg/core/logging"
	"github.com/usnistgov/ndn-autoreg/core/version"
	"github.com/usnistgov/ndn-autoreg/iface/channel"
	"github.com/usnistgov/ndn-autoreg/ndn/mgmt"
	"github.com/usnistgov/ndn-autoreg/ndn/mgmt/gqlmgmt"
	"go.uber.org/zap"
	"go4.org/must"
	"golang.org/x/sys/unix"
)

// Process exit codes.
const (
	exitRuntime = 1
	exitConfig  = 2
)

var logger = logging.New("main")

var (
	fileConfig = autoreg.DefaultConfig()
	client     mgmt.Client
)

var app = &cli.App{
	Version: version.V.String(),
	Usage:   "Register routes toward newly created faces.",
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:    "gqlserver",
			Value:   "http://127.0.0.1:3030/",
			Usage:   "GraphQL `endpoint` of forwarder management",
			EnvVars: []string{"GQLSERVER"},
		},
		&cli.StringSliceFlag{
			Name:  "status-listen",
			Usage: "serve status report at `endpoint` such as tcp4://127.0.0.1:6380",
		},
		&cli.StringSliceFlag{
			Name:  "metrics-listen",
			Usage: "serve Prometheus metrics at `endpoint`",
		},
	}, configFlags(&fileConfig)...),
	Before: func(c *cli.Context) error {
		gc, e := gqlmgmt.New(gqlclient.Config{HTTPUri: c.String("gqlserver")})
		if e != nil {
			return cli.Exit(e, exitConfig)
		}
		client = gc
		return nil
	},
	After: func(c *cli.Context) error {
		if client != nil {
			must.Close(client)
		}
		return nil
	},
	Action:         runDaemon,
	ExitErrHandler: func(*cli.Context, error) {},
	Commands: []*cli.Command{
		statusCommand,
	},
}

func runDaemon(c *cli.Context) error {
	cfg, e := makeConfig(c, fileConfig)
	if e != nil {
		return cli.Exit(e, exitConfig)
	}

	eng, e := autoreg.New(client, cfg)
	if e != nil {
		return cli.Exit(e, exitConfig)
	}
	logger.Info("autoreg configured", cfg.LogFields()...)

	channels := channel.NewRegistry()
	defer channels.Close()
	if e := serveHTTP(channels, client, eng, c.StringSlice("status-listen"), c.StringSlice("metrics-listen")); e != nil {
		return cli.Exit(e, exitRuntime)
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, unix.SIGINT, unix.SIGTERM)
		sig := <-c
		logger.Info("shutdown requested by signal", zap.Stringer("signal", sig))
		cancel()
	}()

	defer eng.OnStateChange(func(st autoreg.State) {
		switch st {
		case autoreg.StateSubscribed:
			go systemdNotify(ctx)
		case autoreg.StateShuttingDown:
			daemon.SdNotify(false, daemon.SdNotifyStopping)
		}
	}).Close()

	if e := eng.Run(ctx); e != nil {
		return cli.Exit(e, exitRuntime)
	}
	return nil
}

func systemdNotify(ctx context.Context) {
	daemon.SdNotify(false, daemon.SdNotifyReady)

	d, e := daemon.SdWatchdogEnabled(false)
	if d == 0 || e != nil {
		logger.Debug("systemd watchdog not configured", zap.Error(e))
		return
	}

	d /= 2
	logger.Debug("systemd watchdog enabled", zap.Duration("duration", d))
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			daemon.SdNotify(false, daemon.SdNotifyWatchdog)
		}
	}
}

func main() {
	var uname unix.Utsname
	unix.Uname(&uname)
	logger.Info("ndnautoreg starting",
		zap.Any("version", version.V),
		zap.Int("uid", os.Getuid()),
		zap.ByteString("linux", bytes.TrimRight(uname.Release[:], string([]byte{0}))),
	)

	if e := app.Run(os.Args); e != nil {
		code := exitCode(e)
		logger.Error("exit", zap.Error(e), zap.Int("code", code))
		logging.Sync()
		os.Exit(code)
	}
}

// exitCode determines process exit code from an error returned by the app.
// Errors without an exit code come from command line parsing.
func exitCode(e error) int {
	if e == nil {
		return 0
	}
	var ec cli.ExitCoder
	if errors.As(e, &ec) {
		return ec.ExitCode()
	}
	return exitConfig
}
