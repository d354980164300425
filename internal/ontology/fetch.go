// Package ontology retrieves the versioned UCO ontology resources the
// validator checks against. The ontologies are treated as fetched artifacts,
// never bundled; a cache only short-circuits the transfer.
package ontology

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gustycube/casedns/internal/logging"
	"github.com/gustycube/casedns/internal/metrics"
	"github.com/gustycube/casedns/internal/rdf"
	"github.com/gustycube/casedns/internal/serialize"
	"golang.org/x/time/rate"
)

// DefaultURLs are the UCO ontology files carrying the SHACL shapes for the
// classes this tool emits.
var DefaultURLs = []string{
	"https://raw.githubusercontent.com/ucoProject/UCO/master/ontology/uco/core/core.ttl",
	"https://raw.githubusercontent.com/ucoProject/UCO/master/ontology/uco/observable/observable.ttl",
}

// Loader fetches and parses ontology documents with retry, per-host
// politeness and caching.
type Loader struct {
	hc    *http.Client
	cache *Cache
	log   *logging.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLoader builds a Loader. redisAddr may be empty; ttl bounds both cache
// tiers.
func NewLoader(log *logging.Logger, redisAddr string, ttl time.Duration) (*Loader, error) {
	cache, err := NewCache(redisAddr, ttl)
	if err != nil {
		return nil, fmt.Errorf("ontology cache: %w", err)
	}
	tr := &http.Transport{
		MaxIdleConns:          16,
		MaxConnsPerHost:       4,
		ResponseHeaderTimeout: 10 * time.Second,
		IdleConnTimeout:       30 * time.Second,
	}
	return &Loader{
		hc:       &http.Client{Transport: tr, Timeout: 60 * time.Second},
		cache:    cache,
		log:      log,
		limiters: make(map[string]*rate.Limiter),
	}, nil
}

// Load fetches and parses every URL, returning the concatenated triples. Any
// fetch or parse failure fails the whole load; a partial ontology graph must
// not masquerade as the full constraint set.
func (l *Loader) Load(ctx context.Context, urls []string) ([]rdf.Triple, error) {
	var out []rdf.Triple
	for _, u := range urls {
		b, err := l.fetch(ctx, u)
		if err != nil {
			metrics.OntologyFetchTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("load ontology %s: %w", u, err)
		}
		triples, err := serialize.Read(bytes.NewReader(b), serialize.FormatTurtle)
		if err != nil {
			metrics.OntologyFetchTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("parse ontology %s: %w", u, err)
		}
		l.log.Info("loaded ontology", "url", u, "triples", len(triples))
		out = append(out, triples...)
	}
	return out, nil
}

// PingCache reports connectivity of the persistent cache tier.
func (l *Loader) PingCache() error { return l.cache.Ping() }

func (l *Loader) fetch(ctx context.Context, rawurl string) ([]byte, error) {
	if b, ok := l.cache.Get(ctx, rawurl); ok {
		metrics.OntologyFetchTotal.WithLabelValues("hit").Inc()
		return b, nil
	}

	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	if err := l.limiter(u.Host).Wait(ctx); err != nil {
		return nil, err
	}

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := l.hc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("bad status: %d", resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		return err
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}

	l.cache.Put(ctx, rawurl, body)
	metrics.OntologyFetchTotal.WithLabelValues("fetched").Inc()
	return body, nil
}

func (l *Loader) limiter(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(1.0), 2)
		l.limiters[host] = lim
	}
	return lim
}
