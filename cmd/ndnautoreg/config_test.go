package main

import (
	"errors"
	"testing"

	"github.com/urfave/cli/v2"
	"github.com/usnistgov/ndn-autoreg/app/autoreg"
	"github.com/usnistgov/ndn-autoreg/core/testenv"
	"github.com/usnistgov/ndn-autoreg/ndn"
)

func parseConfig(t testing.TB, args ...string) (cfg autoreg.Config, e error) {
	fileCfg := autoreg.DefaultConfig()
	app := &cli.App{
		Flags: configFlags(&fileCfg),
		Action: func(c *cli.Context) error {
			cfg, e = makeConfig(c, fileCfg)
			return nil
		},
	}
	if re := app.Run(append([]string{"ndnautoreg"}, args...)); re != nil {
		t.Fatal(re)
	}
	return
}

func nameURIs(list []ndn.Name) (a []string) {
	for _, name := range list {
		a = append(a, name.String())
	}
	return a
}

func parsedNameURIs(input ...string) (a []string) {
	for _, s := range input {
		a = append(a, ndn.ParseName(s).String())
	}
	return a
}

func TestConfigFlags(t *testing.T) {
	assert, require := testenv.MakeAR(t)

	cfg, e := parseConfig(t,
		"-i", "/A", "-i", "/B", "-i", "/A",
		"-a", "/C",
		"-c", "100",
		"-w", "192.0.2.0/24", "-w", "2001:db8::/32",
		"-b", "192.0.2.128/25",
		"--command-timeout", "5s",
	)
	require.NoError(e)
	assert.Equal(parsedNameURIs("/A", "/B"), nameURIs(cfg.AutoregPrefixes))
	assert.Equal(parsedNameURIs("/C"), nameURIs(cfg.AllFacesPrefixes))
	assert.Equal(100, cfg.Cost)
	assert.Equal([]string{"192.0.2.0/24", "2001:db8::/32"}, cfg.Whitelist.Strings())
	assert.Equal([]string{"192.0.2.128/25"}, cfg.Blacklist.Strings())
	assert.EqualValues(5000, cfg.CommandTimeout)
}

func TestConfigDefaults(t *testing.T) {
	assert, require := testenv.MakeAR(t)

	cfg, e := parseConfig(t, "-a", "/C")
	require.NoError(e)
	assert.Equal(autoreg.DefaultCost, cfg.Cost)
	assert.Equal([]string{"0.0.0.0/0", "::/0"}, cfg.Whitelist.Strings())
	assert.Empty(cfg.Blacklist)
	assert.Equal(autoreg.DefaultCommandTimeout, cfg.CommandTimeout.Duration())
}

func TestConfigDocument(t *testing.T) {
	assert, require := testenv.MakeAR(t)

	cfg, e := parseConfig(t,
		"--config", "cost: 20\nautoregPrefixes:\n  - /X\nblacklist:\n  - 198.51.100.0/24\n",
		"-i", "/Y",
		"-b", "203.0.113.0/24",
	)
	require.NoError(e)
	assert.Equal(parsedNameURIs("/X", "/Y"), nameURIs(cfg.AutoregPrefixes))
	assert.Equal(20, cfg.Cost)
	assert.Equal([]string{"198.51.100.0/24", "203.0.113.0/24"}, cfg.Blacklist.Strings())

	cfg, e = parseConfig(t, "--config", "cost: 20\nallFacesPrefixes: [/X]\n", "-c", "30")
	require.NoError(e)
	assert.Equal(30, cfg.Cost)
}

func TestConfigErrors(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	_, e := parseConfig(t, "-c", "10")
	var ce *autoreg.ConfigError
	assert.True(errors.As(e, &ce))
	assert.ErrorIs(e, autoreg.ErrNoPrefix)

	_, e = parseConfig(t, "-i", "/A", "-w", "192.0.2.0/33", "-b", "bogus")
	assert.True(errors.As(e, &ce))
	assert.ErrorContains(e, "--whitelist")
	assert.ErrorContains(e, "--blacklist")

	_, e = parseConfig(t, "-i", "/A", "-c", "70000")
	assert.True(errors.As(e, &ce))
	assert.ErrorContains(e, "Cost")
}
