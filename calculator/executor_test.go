package calculator

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchTask(t *testing.T) {
	e := newExecutor(4)
	out := make([]int, 50)
	var calls int32
	err := e.dispatchTask(len(out), func(i int) error {
		atomic.AddInt32(&calls, 1)
		out[i] = i * i
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(50), calls)
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}

func TestDispatchTask_Error(t *testing.T) {
	boom := errors.New("boom")
	err := newExecutor(0).dispatchTask(5, func(i int) error {
		if i == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, newExecutor(3).dispatchTask(0, func(int) error { return boom }))
}

func TestSweep1D(t *testing.T) {
	opt := optWith(MethodErf, 30)
	p := Params1D(100, -12, 1, 1, 0, true, false, false)
	times := []float64{3600, 10, 600, 60}

	profiles, err := Sweep1D(p, times, opt, 3)
	require.NoError(t, err)
	require.Len(t, profiles, len(times))
	for i, seconds := range times {
		want, err := Diffusion1D(Params1D(100, -12, seconds, 1, 0, true, false, false), opt)
		require.NoError(t, err)
		assert.Equal(t, want, profiles[i])
	}

	// 原参数不变
	seconds, _ := p.Value(Time)
	assert.Equal(t, 1.0, seconds)
}

func TestSweep1D_Error(t *testing.T) {
	p := Params1D(100, -12, 1, 1, 0, false, false, false)
	profiles, err := Sweep1D(p, []float64{10, -1, 20}, DefaultOptions(), 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, profiles)
}
