package monitor

import (
	"sync"
	"time"
)

// RateSampler derives instantaneous outbound throughput from cumulative
// network counters. It keeps the previous sample as baseline, so samples
// must not be reordered; all access goes through a single mutex and the
// read of counters plus the baseline update form one critical section.
type RateSampler struct {
	mu       sync.Mutex
	primed   bool
	lastSent uint64
	lastRecv uint64
	lastAt   time.Time
}

func NewRateSampler() *RateSampler {
	return &RateSampler{}
}

// Sample records the current counters and returns the outbound rate in
// kbit/s since the previous call. The first call primes the baseline and
// returns 0. A non-positive elapsed time returns 0, guarding clock
// anomalies. A counter decrease (interface restart or wraparound) is
// treated as a reset and yields 0 rather than a negative rate.
func (s *RateSampler) Sample(bytesSent, bytesRecv uint64, at time.Time) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.primed {
		s.primed = true
		s.lastSent = bytesSent
		s.lastRecv = bytesRecv
		s.lastAt = at

		return 0
	}

	elapsed := at.Sub(s.lastAt).Seconds()
	var delta uint64
	if bytesSent >= s.lastSent {
		delta = bytesSent - s.lastSent
	}

	s.lastSent = bytesSent
	s.lastRecv = bytesRecv
	s.lastAt = at

	if elapsed <= 0 {
		return 0
	}

	return round2(float64(delta) * 8 / (1024 * elapsed))
}
