package batch

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/grabbr"
	"golang.org/x/time/rate"
)

// Limiter paces page loads.
type Limiter interface {
	// Wait blocks until pageURL may be opened or ctx is done.
	Wait(ctx context.Context, pageURL string) error
}

var _ Limiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out page loads per site with one token bucket per
// SiteKey. Pages on different sites are not held back by each other.
type DomainLimiter struct {
	rps   rate.Limit
	burst int

	mu    sync.Mutex
	sites map[string]*rate.Limiter
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithBurst lets n pages of one site open back to back before pacing
// starts. Defaults to 1.
func WithBurst(n int) LimiterOption {
	return func(d *DomainLimiter) {
		if n > 0 {
			d.burst = n
		}
	}
}

// NewDomainLimiter creates a DomainLimiter allowing rps page loads per
// second per site. A non-positive rps disables pacing.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		rps:   rate.Limit(rps),
		burst: 1,
		sites: make(map[string]*rate.Limiter),
	}
	if rps <= 0 {
		d.rps = rate.Inf
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until the bucket of pageURL's site has a token.
func (d *DomainLimiter) Wait(ctx context.Context, pageURL string) error {
	key, err := SiteKey(pageURL)
	if err != nil {
		return err
	}
	return d.limiter(key).Wait(ctx)
}

// Sites returns how many distinct sites have been paced.
func (d *DomainLimiter) Sites() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sites)
}

func (d *DomainLimiter) limiter(key string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.sites[key]
	if !ok {
		l = rate.NewLimiter(d.rps, d.burst)
		d.sites[key] = l
	}
	return l
}

// SiteKey returns the pacing key of a page URL: its lower-cased host name
// without port or a leading "www.", so www.quiz.example.com:443 and
// quiz.example.com share a bucket.
func SiteKey(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", grabbr.Errorf(grabbr.EINVALID, "invalid URL %q: %v", pageURL, err)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", grabbr.Errorf(grabbr.EINVALID, "URL %q has no host", pageURL)
	}
	return strings.TrimPrefix(host, "www."), nil
}
