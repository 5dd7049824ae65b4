package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/usnistgov/ndn-autoreg/app/autoreg"
	"github.com/usnistgov/ndn-autoreg/core/netrange"
	"github.com/usnistgov/ndn-autoreg/core/nnduration"
	"github.com/usnistgov/ndn-autoreg/core/yamlflag"
	"github.com/usnistgov/ndn-autoreg/ndn"
	"go.uber.org/multierr"
)

// configFlags returns flags that build autoreg.Config.
// The --config document is unmarshaled into fileCfg; other flags are applied on top of it.
func configFlags(fileCfg *autoreg.Config) []cli.Flag {
	return []cli.Flag{
		&cli.GenericFlag{
			Name:  "config",
			Usage: "configuration `document` in YAML or JSON, or @filename",
			Value: yamlflag.New(fileCfg),
		},
		&cli.StringSliceFlag{
			Name:    "prefix",
			Aliases: []string{"i"},
			Usage:   "`prefix` to register on on-demand faces that pass network filters",
		},
		&cli.StringSliceFlag{
			Name:    "all-faces-prefix",
			Aliases: []string{"a"},
			Usage:   "`prefix` to register on every non-local unicast face",
		},
		&cli.IntFlag{
			Name:    "cost",
			Aliases: []string{"c"},
			Value:   autoreg.DefaultCost,
			Usage:   "route `cost`",
		},
		&cli.StringSliceFlag{
			Name:    "whitelist",
			Aliases: []string{"w"},
			Usage:   "`network` where prefixes may be registered, such as 192.0.2.0/24",
		},
		&cli.StringSliceFlag{
			Name:    "blacklist",
			Aliases: []string{"b"},
			Usage:   "`network` where prefixes must not be registered",
		},
		&cli.DurationFlag{
			Name:  "command-timeout",
			Value: autoreg.DefaultCommandTimeout,
			Usage: "registration command `timeout`",
		},
	}
}

func parseRanges(flag string, input []string) (netrange.List, error) {
	list, e := netrange.ParseList(input)
	if e != nil {
		return nil, fmt.Errorf("--%s: %w", flag, e)
	}
	return list, nil
}

// makeConfig combines the configuration document with command line flags.
func makeConfig(c *cli.Context, cfg autoreg.Config) (autoreg.Config, error) {
	for _, s := range c.StringSlice("prefix") {
		cfg.AutoregPrefixes = append(cfg.AutoregPrefixes, ndn.ParseName(s))
	}
	for _, s := range c.StringSlice("all-faces-prefix") {
		cfg.AllFacesPrefixes = append(cfg.AllFacesPrefixes, ndn.ParseName(s))
	}
	if c.IsSet("cost") {
		cfg.Cost = c.Int("cost")
	}
	if c.IsSet("command-timeout") {
		cfg.CommandTimeout = nnduration.Milliseconds(c.Duration("command-timeout") / time.Millisecond)
	}

	whitelist, e0 := parseRanges("whitelist", c.StringSlice("whitelist"))
	blacklist, e1 := parseRanges("blacklist", c.StringSlice("blacklist"))
	if e := multierr.Combine(e0, e1); e != nil {
		return cfg, &autoreg.ConfigError{Err: e}
	}
	cfg.Whitelist = append(cfg.Whitelist, whitelist...)
	cfg.Blacklist = append(cfg.Blacklist, blacklist...)

	cfg.ApplyDefaults()
	return cfg, cfg.Validate()
}
