package events_test

import (
	"testing"

	"github.com/usnistgov/ndn-autoreg/core/events"
	"github.com/usnistgov/ndn-autoreg/core/testenv"
	"go.uber.org/atomic"
)

func TestOnCancel(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	nA, nB := 0, 0
	fA := func() { nA++ }
	fB := func() { nB++ }

	emitter := events.NewEmitter()
	cancelA := emitter.On(1, fA)
	cancelB := emitter.On(1, fB)

	emitter.Emit(1)
	assert.Equal(1, nA)
	assert.Equal(1, nB)

	cancelA.Close()
	emitter.Emit(1)
	assert.Equal(1, nA)
	assert.Equal(2, nB)

	cancelA.Close()
	emitter.Emit(1)
	assert.Equal(1, nA)
	assert.Equal(3, nB)

	cancelB.Close()
	emitter.Emit(1)
	assert.Equal(1, nA)
	assert.Equal(3, nB)
}

func TestArgs(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	var got []string
	emitter := events.NewEmitter()
	closer := emitter.On("evt", func(s string, n int) {
		got = append(got, s)
		assert.Equal(len(got), n)
	})
	emitter.Emit("evt", "a", 1)
	emitter.Emit("evt", "b", 2)
	closer.Close()
	emitter.Emit("evt", "c", 3)
	assert.Equal([]string{"a", "b"}, got)
}

func TestOnce(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	nA, nB := 0, 0
	emitter := events.NewEmitter()
	emitter.Once("evt", func() { nA++ })
	cancelB := emitter.Once("evt", func() { nB++ })
	cancelB.Close()

	emitter.Emit("evt")
	emitter.Emit("evt")
	assert.Equal(1, nA)
	assert.Equal(0, nB)
}

func TestCancelSameFunc(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	var n atomic.Int32
	f := func() { n.Add(1) }

	emitter := events.NewEmitter()
	cancel1 := emitter.On("evt", f)
	emitter.On("evt", f)

	emitter.Emit("evt")
	assert.EqualValues(2, n.Load())

	cancel1.Close()
	emitter.Emit("evt")
	assert.EqualValues(3, n.Load())
}
