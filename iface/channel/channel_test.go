package channel_test

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"testing"

	"github.com/gabstv/freeport"
	"github.com/usnistgov/ndn-autoreg/core/testenv"
	"github.com/usnistgov/ndn-autoreg/iface/channel"
)

func tcpKey(t testing.TB) channel.EndpointKey {
	port, e := freeport.TCP()
	if e != nil {
		t.Fatal(e)
	}
	return channel.EndpointKey(fmt.Sprintf("tcp4://127.0.0.1:%d", port))
}

func newRegistry(t testing.TB) *channel.Registry {
	r := channel.NewRegistry()
	t.Cleanup(func() { r.Close() })
	return r
}

func TestCreateOrGet(t *testing.T) {
	assert, require := testenv.MakeAR(t)
	r := newRegistry(t)

	key := tcpKey(t)
	assert.Nil(r.Find(key))

	ch, e := r.CreateOrGet(key)
	require.NoError(e)
	require.NotNil(ch)
	assert.Equal(key, ch.Key())
	assert.Equal(string(key), ch.URI().String())
	assert.NotNil(ch.Listener())
	assert.Nil(ch.PacketConn())

	ch2, e := r.CreateOrGet(key)
	require.NoError(e)
	assert.Same(ch, ch2)
	assert.Same(ch, r.Find(key))
	assert.Len(r.List(), 1)

	conn, e := net.Dial("tcp4", ch.LocalAddr().String())
	require.NoError(e)
	conn.Close()

	key3 := tcpKey(t)
	ch3, e := r.CreateOrGet(key3)
	require.NoError(e)
	assert.NotSame(ch, ch3)
	assert.Len(r.List(), 2)

	assert.Nil(r.Find("tcp4://127.0.0.1:1"))
}

func TestConcurrent(t *testing.T) {
	assert, require := testenv.MakeAR(t)
	r := newRegistry(t)

	key := tcpKey(t)
	const n = 16
	results := make([]*channel.Channel, n)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ch, e := r.CreateOrGet(key)
			assert.NoError(e)
			results[i] = ch
		}(i)
	}
	wg.Wait()

	require.NotNil(results[0])
	for _, ch := range results {
		assert.Same(results[0], ch)
	}
	assert.Len(r.List(), 1)
}

func TestCreationError(t *testing.T) {
	assert, require := testenv.MakeAR(t)
	r := newRegistry(t)

	key := tcpKey(t)
	occupier, e := net.Listen("tcp4", string(key)[len("tcp4://"):])
	require.NoError(e)
	defer occupier.Close()

	ch, e := r.CreateOrGet(key)
	assert.Nil(ch)
	var ce *channel.CreationError
	if assert.True(errors.As(e, &ce)) {
		assert.Equal(key, ce.Key)
		assert.Error(ce.Unwrap())
	}
	assert.Nil(r.Find(key))
	assert.Len(r.List(), 0)

	for _, bad := range []channel.EndpointKey{"", "bogus", "tcp4://example.net:6363", "internal://", "dev://eth1"} {
		ch, e := r.CreateOrGet(bad)
		assert.Nil(ch, bad)
		assert.True(errors.As(e, &ce), bad)
		assert.Nil(r.Find(bad), bad)
	}
	assert.Len(r.List(), 0)

	occupier.Close()
	ch, e = r.CreateOrGet(key)
	assert.NoError(e)
	assert.NotNil(ch)
}

func TestUnix(t *testing.T) {
	assert, require := testenv.MakeAR(t)
	r := newRegistry(t)

	path := testenv.TempName(t, "sub", "nfd.sock")
	key := channel.EndpointKey("unix://" + path)
	ch, e := r.CreateOrGet(key)
	require.NoError(e)
	assert.Equal("unix", ch.LocalAddr().Network())

	ch2, e := r.CreateOrGet(key)
	require.NoError(e)
	assert.Same(ch, ch2)

	// live socket held by another owner
	r2 := newRegistry(t)
	_, e = r2.CreateOrGet(key)
	assert.ErrorIs(e, channel.ErrSocketInUse)

	require.NoError(r.Close())
	assert.Nil(r.Find(key))
	_, e = os.Stat(path)
	assert.True(errors.Is(e, os.ErrNotExist))
}

func TestUnixStale(t *testing.T) {
	assert, require := testenv.MakeAR(t)
	r := newRegistry(t)

	path := testenv.TempName(t, "stale.sock")
	stale, e := net.ListenUnix("unix", &net.UnixAddr{Net: "unix", Name: path})
	require.NoError(e)
	stale.SetUnlinkOnClose(false)
	stale.Close()
	_, e = os.Stat(path)
	require.NoError(e)

	ch, e := r.CreateOrGet(channel.EndpointKey("unix://" + path))
	require.NoError(e)
	assert.NotNil(ch.Listener())

	regular := testenv.TempName(t, "regular")
	require.NoError(os.WriteFile(regular, []byte("x"), 0o644))
	_, e = r.CreateOrGet(channel.EndpointKey("unix://" + regular))
	assert.ErrorIs(e, channel.ErrNotSocketFile)
}

func TestDatagram(t *testing.T) {
	assert, require := testenv.MakeAR(t)
	r := newRegistry(t)

	port, e := freeport.TCP()
	require.NoError(e)
	key := channel.EndpointKey(fmt.Sprintf("udp4://127.0.0.1:%d", port))

	ch, e := r.CreateOrGet(key)
	require.NoError(e)
	assert.Nil(ch.Listener())
	require.NotNil(ch.PacketConn())
	assert.Equal("udp", ch.LocalAddr().Network())

	ch2, e := r.CreateOrGet(key)
	require.NoError(e)
	assert.Same(ch, ch2)

	require.NoError(r.Close())
	assert.Len(r.List(), 0)
	_, _, e = ch.PacketConn().ReadFrom(make([]byte, 16))
	assert.Error(e)
}
