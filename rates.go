package finledger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Pair identifies a directed currency conversion, e.g. {EUR USD}.
type Pair struct{ From, To string }

func (p Pair) String() string { return p.From + "/" + p.To }

// Inverse returns the pair for the opposite conversion.
func (p Pair) Inverse() Pair { return Pair{From: p.To, To: p.From} }

// ParsePair parses a "FROM/TO" pair key.
func ParsePair(s string) (Pair, error) {
	from, to, ok := strings.Cut(s, "/")
	if !ok || from == "" || to == "" {
		return Pair{}, fmt.Errorf("invalid currency pair %q, want \"FROM/TO\"", s)
	}
	return Pair{From: strings.ToUpper(from), To: strings.ToUpper(to)}, nil
}

// RateTier tells how a rate was obtained, so callers and reports can
// distinguish "accurately converted" from "best effort".
type RateTier int

const (
	// TierIdentity is the 1.0 rate of a same-currency conversion.
	TierIdentity RateTier = iota
	// TierCached is a remote rate reused within its TTL.
	TierCached
	// TierLive is a rate freshly fetched from the remote provider.
	TierLive
	// TierFallback comes from the static checked-in table.
	TierFallback
	// TierUnknown means no rate exists for the pair; the value is 1.0 and
	// the amount must be reported as unconverted.
	TierUnknown
)

func (t RateTier) String() string {
	switch t {
	case TierIdentity:
		return "identity"
	case TierCached:
		return "cached"
	case TierLive:
		return "live"
	case TierFallback:
		return "fallback"
	case TierUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Rate is the outcome of a rate lookup. Value is always positive and usable;
// Tier records which tier of the source produced it.
type Rate struct {
	Value decimal.Decimal
	Tier  RateTier
}

// Converted reports whether applying this rate actually changed currency.
func (r Rate) Converted() bool { return r.Tier != TierIdentity && r.Tier != TierUnknown }

// RateProvider fetches the current full rate table against a base currency:
// the result maps a currency code to the amount of that currency one unit of
// base buys. Implementations must bound their own network timeouts.
type RateProvider interface {
	FetchRates(base string) (map[string]decimal.Decimal, error)
}

// cachedRate is one cache entry; valid while now < FetchedAt + TTL.
type cachedRate struct {
	Rate      decimal.Decimal
	FetchedAt time.Time
}

// RateSource supplies conversion rates, degrading through tiers: in-memory
// cache, remote provider, static fallback table, and finally the 1.0
// unknown rate. It never fails: every lookup produces a usable number.
//
// The cache is explicitly owned by the source; it is loaded from an optional
// durable file at construction and written through after successful fetches.
// All cache access happens under one mutex so that concurrent lookups for
// the same pair trigger at most one remote fetch.
type RateSource struct {
	base     string
	ttl      time.Duration
	provider RateProvider
	fallback map[Pair]decimal.Decimal

	mu        sync.Mutex
	cache     map[Pair]cachedRate
	cacheFile string
	now       func() time.Time
}

// NewRateSource builds a rate source from the configuration and a remote
// provider. A nil provider disables the remote tier (fallback only).
func NewRateSource(cfg Config, provider RateProvider) *RateSource {
	s := &RateSource{
		base:      cfg.BaseCurrency,
		ttl:       cfg.CacheTTL(),
		provider:  provider,
		fallback:  cfg.fallbackTable(),
		cache:     make(map[Pair]cachedRate),
		cacheFile: cfg.CacheFile,
		now:       time.Now,
	}
	s.loadCacheFile()
	return s
}

var one = decimal.NewFromInt(1)

// GetRate returns the conversion rate from one currency to another. It never
// fails; the Tier of the result tells how trustworthy the value is.
func (s *RateSource) GetRate(from, to string) Rate {
	if from == to {
		return Rate{Value: one, Tier: TierIdentity}
	}
	pair := Pair{From: from, To: to}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rate, ok := s.lookupLocked(pair); ok {
		return Rate{Value: rate, Tier: TierCached}
	}

	if s.provider != nil {
		if err := s.fetchLocked(to); err != nil {
			log.Printf("rate fetch for %s failed, falling back to static rates: %v", pair, err)
		} else if rate, ok := s.lookupLocked(pair); ok {
			return Rate{Value: rate, Tier: TierLive}
		}
	}

	if rate, ok := s.fallbackRate(pair); ok {
		return Rate{Value: rate, Tier: TierFallback}
	}
	return Rate{Value: one, Tier: TierUnknown}
}

// Refresh forces a remote fetch of the full rate table against the base
// currency, regardless of cache freshness.
func (s *RateSource) Refresh() error {
	if s.provider == nil {
		return fmt.Errorf("no rate provider configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchLocked(s.base)
}

// Invalidate clears the in-memory cache and removes the durable cache file.
func (s *RateSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[Pair]cachedRate)
	if s.cacheFile != "" {
		if err := os.Remove(s.cacheFile); err != nil && !os.IsNotExist(err) {
			log.Printf("cache remove err (ignored): %v", err)
		}
	}
}

// PairRate is one unexpired cache entry, for inspection.
type PairRate struct {
	Pair      Pair
	Rate      decimal.Decimal
	FetchedAt time.Time
}

// Cached returns the unexpired cache entries, in no particular order.
func (s *RateSource) Cached() []PairRate {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]PairRate, 0, len(s.cache))
	for pair, e := range s.cache {
		if s.freshLocked(e) {
			entries = append(entries, PairRate{Pair: pair, Rate: e.Rate, FetchedAt: e.FetchedAt})
		}
	}
	return entries
}

func (s *RateSource) freshLocked(e cachedRate) bool {
	return s.now().Before(e.FetchedAt.Add(s.ttl))
}

// lookupLocked resolves a pair from unexpired cache entries, either directly
// or crossing through the configured base currency.
func (s *RateSource) lookupLocked(pair Pair) (decimal.Decimal, bool) {
	if e, ok := s.cache[pair]; ok && s.freshLocked(e) {
		return e.Rate, true
	}
	// Cross through the base: FROM -> base -> TO.
	leg1, ok1 := s.cache[Pair{From: pair.From, To: s.base}]
	leg2, ok2 := s.cache[Pair{From: s.base, To: pair.To}]
	if ok1 && ok2 && s.freshLocked(leg1) && s.freshLocked(leg2) {
		return leg1.Rate.Mul(leg2.Rate), true
	}
	return decimal.Decimal{}, false
}

// fetchLocked queries the provider for the full table against 'against' and
// populates the cache with every returned pair and its inverse.
func (s *RateSource) fetchLocked(against string) error {
	table, err := s.provider.FetchRates(against)
	if err != nil {
		return err
	}
	fetchedAt := s.now()
	for code, rate := range table {
		if code == against || !rate.IsPositive() {
			continue
		}
		// rate is the amount of 'code' one unit of 'against' buys.
		s.cache[Pair{From: against, To: code}] = cachedRate{Rate: rate, FetchedAt: fetchedAt}
		s.cache[Pair{From: code, To: against}] = cachedRate{Rate: one.Div(rate), FetchedAt: fetchedAt}
	}
	s.saveCacheFile()
	return nil
}

// fallbackRate resolves a pair from the static table: the pair itself, its
// inverse, or a cross through USD.
func (s *RateSource) fallbackRate(pair Pair) (decimal.Decimal, bool) {
	if rate, ok := s.directFallback(pair); ok {
		return rate, true
	}
	leg1, ok1 := s.directFallback(Pair{From: pair.From, To: "USD"})
	leg2, ok2 := s.directFallback(Pair{From: "USD", To: pair.To})
	if ok1 && ok2 {
		return leg1.Mul(leg2), true
	}
	return decimal.Decimal{}, false
}

func (s *RateSource) directFallback(pair Pair) (decimal.Decimal, bool) {
	if rate, ok := s.fallback[pair]; ok {
		return rate, true
	}
	if rate, ok := s.fallback[pair.Inverse()]; ok && rate.IsPositive() {
		return one.Div(rate), true
	}
	return decimal.Decimal{}, false
}

// jcache is the durable cache file layout.
type jcache struct {
	Rates []jcachedRate `json:"rates"`
}

type jcachedRate struct {
	Pair      string          `json:"pair"`
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// loadCacheFile restores previously fetched rates. A missing or unreadable
// file is not an error: the cache simply starts cold.
func (s *RateSource) loadCacheFile() {
	if s.cacheFile == "" {
		return
	}
	content, err := os.ReadFile(s.cacheFile)
	if err != nil {
		return
	}
	var jc jcache
	if err := json.Unmarshal(content, &jc); err != nil {
		log.Printf("cannot parse rate cache %q (ignored): %v", s.cacheFile, err)
		return
	}
	for _, je := range jc.Rates {
		pair, err := ParsePair(je.Pair)
		if err != nil || !je.Rate.IsPositive() {
			continue
		}
		s.cache[pair] = cachedRate{Rate: je.Rate, FetchedAt: je.FetchedAt}
	}
}

// saveCacheFile writes the cache through to disk. Failures are logged and
// ignored: the durable cache is an optimization, not a requirement.
func (s *RateSource) saveCacheFile() {
	if s.cacheFile == "" {
		return
	}
	jc := jcache{Rates: make([]jcachedRate, 0, len(s.cache))}
	for pair, e := range s.cache {
		jc.Rates = append(jc.Rates, jcachedRate{Pair: pair.String(), Rate: e.Rate, FetchedAt: e.FetchedAt})
	}
	content, err := json.Marshal(jc)
	if err != nil {
		log.Printf("cache encode err (ignored): %v", err)
		return
	}
	if err := os.WriteFile(s.cacheFile, content, 0644); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
}
