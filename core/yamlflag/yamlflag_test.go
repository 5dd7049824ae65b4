package yamlflag_test

import (
	"os"
	"testing"

	"github.com/usnistgov/ndn-autoreg/core/nnduration"
	"github.com/usnistgov/ndn-autoreg/core/testenv"
	"github.com/usnistgov/ndn-autoreg/core/yamlflag"
)

type sampleConfig struct {
	Prefixes []string                `json:"prefixes"`
	Cost     int                     `json:"cost"`
	Timeout  nnduration.Milliseconds `json:"timeout"`
}

func TestInline(t *testing.T) {
	assert, require := testenv.MakeAR(t)

	var cfg sampleConfig
	v := yamlflag.New(&cfg)
	require.NoError(v.Set("prefixes: [/A, /B]\ncost: 7\ntimeout: 2s"))
	assert.Equal([]string{"/A", "/B"}, cfg.Prefixes)
	assert.Equal(7, cfg.Cost)
	assert.Equal(nnduration.Milliseconds(2000), cfg.Timeout)
	assert.Same(&cfg, v.Get())
	assert.Contains(v.String(), `"cost":7`)

	assert.Error(v.Set("cost: [oops"))
}

func TestFile(t *testing.T) {
	assert, require := testenv.MakeAR(t)

	filename := testenv.TempName(t, "config.yaml")
	require.NoError(os.WriteFile(filename, []byte("cost: 12\n"), 0o644))

	cfg := sampleConfig{Cost: 255}
	v := yamlflag.New(&cfg)
	require.NoError(v.Set("@" + filename))
	assert.Equal(12, cfg.Cost)
	assert.Nil(cfg.Prefixes)

	assert.Error(v.Set("@" + filename + ".missing"))
}

func TestNotPointer(t *testing.T) {
	assert, _ := testenv.MakeAR(t)
	assert.Panics(func() { yamlflag.New(sampleConfig{}) })
}
