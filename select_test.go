// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cosync_test

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"code.hybscloud.com/cosync"
)

func TestSelectReturnsReadyChannel(t *testing.T) {
	c1 := cosync.NewChan[string](1)
	c1.Push("FOO", 0)

	r, err := cosync.Select(cosync.NoTimeout, c1)
	require.NoError(t, err)
	assert.True(t, r.Selected(c1))
	assert.Equal(t, cosync.StatusOK, r.Status)
	v, ok := cosync.Value[string](r)
	assert.True(t, ok)
	assert.Equal(t, "FOO", v)
	assert.True(t, c1.IsEmpty(), "Select consumes the value")
}

func TestSelectTimesOutOnEmptyChannel(t *testing.T) {
	c1 := cosync.NewChan[int](1)

	start := time.Now()
	r, err := cosync.Select(10*time.Millisecond, c1)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.True(t, r.None())
	assert.Nil(t, r.Chan)
	assert.Nil(t, r.Value)
	assert.Equal(t, cosync.StatusTimedOut, r.Status)
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
}

func TestSelectTimeoutBounds(t *testing.T) {
	a := cosync.NewChan[int](1)
	b := cosync.NewChan[int](1)
	const timeout = 50 * time.Millisecond

	start := time.Now()
	r, err := cosync.Select(timeout, a, b)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.True(t, r.None())
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, timeout+timingSlack)
}

func TestSelectZeroTimeout(t *testing.T) {
	a := cosync.NewChan[int](1)
	r, err := cosync.Select(0, a)
	require.NoError(t, err)
	assert.True(t, r.None())

	a.Push(3, 0)
	r, err = cosync.Select(0, a)
	require.NoError(t, err)
	assert.True(t, r.Selected(a))
}

func TestSelectOnlyOneNonEmpty(t *testing.T) {
	c1 := cosync.NewChan[string](1)
	c2 := cosync.NewChan[string](1)
	c1.Push("FOO", 0)

	r, err := cosync.Select(cosync.NoTimeout, c1, c2)
	require.NoError(t, err)
	assert.True(t, r.Selected(c1))
	assert.Equal(t, "FOO", r.Value)
}

func TestSelectDrainsEveryReadyChannel(t *testing.T) {
	c1 := cosync.NewChan[string](1)
	c2 := cosync.NewChan[string](1)
	c1.Push("FOO", 0)
	c2.Push("BAR", 0)

	var got []string
	for range 2 {
		r, err := cosync.Select(cosync.NoTimeout, c1, c2)
		require.NoError(t, err)
		v, ok := cosync.Value[string](r)
		require.True(t, ok)
		got = append(got, v)
	}
	slices.Sort(got)
	assert.Equal(t, []string{"BAR", "FOO"}, got)
}

func TestSelectUntilAllClosed(t *testing.T) {
	defer goleak.VerifyNone(t)

	c1 := cosync.NewChan[int](0)
	c2 := cosync.NewChan[int](0)
	want := make([]int, 100)
	for i := range want {
		want[i] = i + 1
	}

	go func() {
		for _, n := range want {
			if rand.IntN(2) == 0 {
				c1.Push(n, cosync.NoTimeout)
			} else {
				c2.Push(n, cosync.NoTimeout)
			}
		}
		c1.Close()
		c2.Close()
	}()

	var got []int
	a, b := c1, c2
	for a != nil || b != nil {
		r, err := cosync.Select(cosync.NoTimeout, a, b)
		require.NoError(t, err)
		if r.Status == cosync.StatusClosed {
			switch {
			case r.Selected(a):
				a = nil
			case r.Selected(b):
				b = nil
			}
			continue
		}
		v, ok := cosync.Value[int](r)
		require.True(t, ok)
		got = append(got, v)
	}

	slices.Sort(got)
	assert.Equal(t, want, got)
}

func TestSelectClosedDoesNotStarveOthers(t *testing.T) {
	c1 := cosync.NewChan[string](0)
	c1.Close()
	c2 := cosync.NewChan[string](1)
	c2.Push("select channel 2", 0)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		r, err := cosync.Select(cosync.NoTimeout, c1, c2)
		require.NoError(t, err)
		if r.Selected(c1) {
			assert.Equal(t, cosync.StatusClosed, r.Status)
			assert.Nil(t, r.Value)
			continue
		}
		assert.Equal(t, "select channel 2", r.Value)
		return
	}
	t.Fatal("ready channel was never selected next to a closed one")
}

func TestSelectClosedAsCancelSignal(t *testing.T) {
	c1 := cosync.NewChan[int](0)
	c2 := cosync.NewChan[int](0)
	cancel := cosync.NewChan[struct{}](0)
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel.Close()
	}()

	r, err := cosync.Select(cosync.NoTimeout, c1, c2, cancel)
	require.NoError(t, err)
	assert.True(t, r.Selected(cancel))
	assert.Equal(t, cosync.StatusClosed, r.Status)
}

func TestSelectWithTimerChan(t *testing.T) {
	data := cosync.NewChan[int](1)
	timer := cosync.NewTimerChan(20 * time.Millisecond)
	defer timer.Dispose()

	r, err := cosync.Select(cosync.NoTimeout, data, timer)
	require.NoError(t, err)
	require.True(t, r.Selected(timer))
	at, ok := cosync.Value[time.Time](r)
	assert.True(t, ok)
	assert.False(t, at.IsZero())
}

func TestSelectWithoutChannels(t *testing.T) {
	_, err := cosync.Select(cosync.NoTimeout)
	assert.ErrorIs(t, err, cosync.ErrNoChannels)
	_, err = cosync.TrySelect()
	assert.ErrorIs(t, err, cosync.ErrNoChannels)
}

func TestSelectIgnoresNilOperands(t *testing.T) {
	var none *cosync.Chan[int]
	var noTimer *cosync.TimerChan
	c := cosync.NewChan[int](1)
	c.Push(9, 0)

	r, err := cosync.Select(cosync.NoTimeout, nil, none, noTimer, c)
	require.NoError(t, err)
	assert.True(t, r.Selected(c))
	assert.Equal(t, 9, r.Value)
}

func TestSelectAllNilWithTimeout(t *testing.T) {
	var none *cosync.Chan[int]
	start := time.Now()
	r, err := cosync.Select(10*time.Millisecond, none)
	require.NoError(t, err)
	assert.True(t, r.None())
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestSelectDoesNotReorderOperands(t *testing.T) {
	chans := []cosync.Selectable{
		cosync.NewChan[int](1), cosync.NewChan[int](1), cosync.NewChan[int](1),
	}
	before := slices.Clone(chans)
	cosync.Select(0, chans...)
	assert.Equal(t, before, chans)
}

func TestSelectFairness(t *testing.T) {
	const trials = 10000
	a := cosync.NewChan[int](1)
	b := cosync.NewChan[int](1)
	a.Push(0, 0)
	b.Push(0, 0)

	sel := cosync.NewSelector(cosync.WithoutMetrics())
	hitsA := 0
	for range trials {
		r, err := sel.Select(cosync.NoTimeout, a, b)
		require.NoError(t, err)
		if r.Selected(a) {
			hitsA++
			a.Push(0, 0)
		} else {
			b.Push(0, 0)
		}
	}
	assert.InDelta(t, trials/2, hitsA, 400, "selection is biased: a won %d of %d", hitsA, trials)
}

func TestSelectorWithRandDeterministic(t *testing.T) {
	run := func() []bool {
		a := cosync.NewChan[int](1)
		b := cosync.NewChan[int](1)
		sel := cosync.NewSelector(cosync.WithRand(rand.New(rand.NewPCG(1, 2))), cosync.WithoutMetrics())
		var picks []bool
		for range 32 {
			a.Push(0, 0)
			b.Push(0, 0)
			r, err := sel.Select(cosync.NoTimeout, a, b)
			require.NoError(t, err)
			picks = append(picks, r.Selected(a))
			a.Pop(0)
			b.Pop(0)
		}
		return picks
	}
	assert.Equal(t, run(), run())
}

func TestSelectorPollInterval(t *testing.T) {
	assert.PanicsWithValue(t, "cosync: poll interval must be positive", func() {
		cosync.NewSelector(cosync.WithPollInterval(0))
	})

	sel := cosync.NewSelector(cosync.WithPollInterval(5 * time.Millisecond))
	a := cosync.NewChan[int](1)
	start := time.Now()
	r, err := sel.Select(20*time.Millisecond, a)
	require.NoError(t, err)
	assert.True(t, r.None())
	assert.Less(t, time.Since(start), 20*time.Millisecond+5*time.Millisecond+timingSlack)
}

func TestTrySelect(t *testing.T) {
	a := cosync.NewChan[int](1)
	b := cosync.NewChan[int](1)

	_, err := cosync.TrySelect(a, b)
	assert.True(t, iox.IsWouldBlock(err), "got %v", err)

	b.Push(4, 0)
	r, err := cosync.TrySelect(a, b)
	require.NoError(t, err)
	assert.True(t, r.Selected(b))
	assert.Equal(t, 4, r.Value)

	a.Close()
	r, err = cosync.TrySelect(a, b)
	require.NoError(t, err)
	assert.True(t, r.Selected(a))
	assert.Equal(t, cosync.StatusClosed, r.Status)
}

func TestValueTypeMismatch(t *testing.T) {
	a := cosync.NewChan[int](1)
	a.Push(1, 0)
	r, err := cosync.Select(cosync.NoTimeout, a)
	require.NoError(t, err)
	_, ok := cosync.Value[string](r)
	assert.False(t, ok)
}
