package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// DefaultBreakerThreshold is the number of failures that opens a breaker.
const DefaultBreakerThreshold = 5

// Breakers keeps one circuit breaker per upstream host.
type Breakers struct {
	threshold int64
	initial   time.Duration
	maxWait   time.Duration

	mu       sync.RWMutex
	breakers map[string]*circuit.Breaker
}

// NewBreakers creates a breaker set that opens after threshold failures and
// waits between 5s and 1m (growing exponentially) before letting a probe
// request through. A non-positive threshold selects [DefaultBreakerThreshold].
func NewBreakers(threshold int) *Breakers {
	if threshold <= 0 {
		threshold = DefaultBreakerThreshold
	}
	return &Breakers{
		threshold: int64(threshold),
		initial:   5 * time.Second,
		maxWait:   time.Minute,
		breakers:  make(map[string]*circuit.Breaker),
	}
}

func (b *Breakers) get(host string) *circuit.Breaker {
	b.mu.RLock()
	br, ok := b.breakers[host]
	b.mu.RUnlock()
	if ok {
		return br
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if br, ok := b.breakers[host]; ok {
		return br
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = b.initial
	exp.MaxInterval = b.maxWait
	exp.Multiplier = 2.0
	exp.Reset()

	br = circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    exp,
		ShouldTrip: circuit.ThresholdTripFunc(b.threshold),
	})
	b.breakers[host] = br
	return br
}

// Do runs fn under the breaker for rawURL's host. While the breaker is open,
// fn is not called and the error wraps [ErrBreakerOpen]. Transport failures,
// timeouts and server errors count against the host; cancellations, 404s and
// other client-side statuses do not.
func (b *Breakers) Do(ctx context.Context, rawURL string, fn func() error) error {
	host := hostOf(rawURL)
	br := b.get(host)
	if !br.Ready() {
		return fmt.Errorf("%w: %s", ErrBreakerOpen, host)
	}

	err := fn()
	switch {
	case err == nil:
		br.Success()
	case canceled(ctx, err):
	case errors.Is(err, ErrNetwork):
		br.Fail()
	}
	return err
}

// State reports "open" or "closed" for every host seen so far.
func (b *Breakers) State() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	states := make(map[string]string, len(b.breakers))
	for host, br := range b.breakers {
		if br.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
