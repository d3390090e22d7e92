package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSamplerFirstCallReturnsZero(t *testing.T) {
	t.Parallel()

	s := NewRateSampler()

	rate := s.Sample(1_000_000, 2_000_000, time.Now())
	assert.Zero(t, rate)
}

func TestSamplerComputesOutboundRate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		desc     string
		sent     []uint64
		interval time.Duration
		expected float64
	}{
		{
			desc:     "1 MiB over one second",
			sent:     []uint64{0, 1024 * 1024},
			interval: time.Second,
			expected: 8192,
		},
		{
			desc:     "128 KiB over two seconds",
			sent:     []uint64{0, 128 * 1024},
			interval: 2 * time.Second,
			expected: 512,
		},
		{
			desc:     "no traffic",
			sent:     []uint64{5000, 5000},
			interval: time.Second,
			expected: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			s := NewRateSampler()
			at := time.Now()

			rate := s.Sample(tc.sent[0], 0, at)
			assert.Zero(t, rate)

			rate = s.Sample(tc.sent[1], 0, at.Add(tc.interval))
			assert.InDelta(t, tc.expected, rate, 0.01)
		})
	}
}

func TestSamplerMonotonicSequenceNeverNegative(t *testing.T) {
	t.Parallel()

	s := NewRateSampler()
	at := time.Now()

	var sent uint64
	for i := 0; i < 50; i++ {
		sent += uint64(i * 1337)
		at = at.Add(time.Duration(i+1) * 100 * time.Millisecond)
		rate := s.Sample(sent, sent*2, at)
		assert.GreaterOrEqual(t, rate, 0.0)
	}
}

func TestSamplerCounterResetYieldsZero(t *testing.T) {
	t.Parallel()

	s := NewRateSampler()
	at := time.Now()

	s.Sample(10_000_000, 0, at)

	// Interface restart: counters start over from near zero.
	rate := s.Sample(4096, 0, at.Add(time.Second))
	assert.Zero(t, rate)

	// The reset sample became the new baseline.
	rate = s.Sample(4096+1024*1024, 0, at.Add(2*time.Second))
	assert.InDelta(t, 8192.0, rate, 0.01)
}

func TestSamplerNonPositiveElapsedYieldsZero(t *testing.T) {
	t.Parallel()

	s := NewRateSampler()
	at := time.Now()

	s.Sample(0, 0, at)

	rate := s.Sample(1024*1024, 0, at)
	assert.Zero(t, rate)

	rate = s.Sample(2*1024*1024, 0, at.Add(-time.Second))
	assert.Zero(t, rate)
}

func TestSamplerConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewRateSampler()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rate := s.Sample(uint64(n*j*1000), 0, time.Now())
				assert.GreaterOrEqual(t, rate, 0.0)
			}
		}(i)
	}
	wg.Wait()
}
