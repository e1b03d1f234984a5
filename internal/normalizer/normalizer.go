package normalizer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/nounkey/internal/config"
	"github.com/knowledge-engine/nounkey/internal/key"
)

var (
	ErrEmptyKey      = errors.New("key is required")
	ErrBatchTooLarge = errors.New("batch too large")
)

// Normalizer fronts a key parser for the API and CLI and keeps counters
type Normalizer struct {
	Config config.NormalizerConfig
	Logger *logrus.Entry
	Parser key.KeyParser

	mu    sync.RWMutex
	stats Stats
}

type Stats struct {
	Parsed     int64
	Mismatches int64
	Rejected   int64
	StartTime  time.Time
}

// Request is one key to normalize. A nil Index means none was supplied.
type Request struct {
	Key   string `json:"key"`
	Index *int   `json:"index,omitempty"`
}

// Result is the outcome of normalizing one Request
type Result struct {
	Raw   string
	Key   string
	Index int
	Err   error
}

func New(cfg config.NormalizerConfig, parser key.KeyParser, logger *logrus.Entry) *Normalizer {
	return &Normalizer{
		Config: cfg,
		Logger: logger,
		Parser: parser,
		stats:  Stats{StartTime: time.Now()},
	}
}

// Normalize parses a single raw key. Parser errors are returned unchanged in
// Result.Err.
func (n *Normalizer) Normalize(rawKey string, index *int) Result {
	res := Result{Raw: rawKey}
	if rawKey == "" {
		res.Err = ErrEmptyKey
		n.record(res.Err)
		return res
	}

	res.Key, res.Index, res.Err = n.Parser.Parse(rawKey, index)
	n.record(res.Err)

	if res.Err != nil {
		entry := n.Logger.WithField("key", rawKey)
		if index != nil {
			entry = entry.WithField("index", *index)
		}
		if errors.Is(res.Err, key.ErrArgumentMismatch) {
			entry.WithError(res.Err).Warn("Key and index disagree")
		} else {
			entry.WithError(res.Err).Debug("Key rejected")
		}
		return res
	}

	n.Logger.WithFields(logrus.Fields{
		"key":        rawKey,
		"base_key":   res.Key,
		"base_index": res.Index,
	}).Debug("Key normalized")
	return res
}

// NormalizeBatch normalizes reqs with at most Config.BatchConcurrency
// parses in flight. Results are in request order. If ctx is cancelled,
// requests that had not started carry ctx.Err() and the error is returned
// alongside the partial results.
func (n *Normalizer) NormalizeBatch(ctx context.Context, reqs []Request) ([]Result, error) {
	if limit := n.Config.MaxBatchSize; limit > 0 && len(reqs) > limit {
		return nil, fmt.Errorf("%w: %d keys, limit is %d", ErrBatchTooLarge, len(reqs), limit)
	}

	workers := n.Config.BatchConcurrency
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(reqs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return cancelRemaining(results, reqs, i, err), err
		}

		select {
		case <-ctx.Done():
			wg.Wait()
			return cancelRemaining(results, reqs, i, ctx.Err()), ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = n.Normalize(req.Key, req.Index)
		}(i, req)
	}

	wg.Wait()
	n.Logger.WithField("count", len(reqs)).Debug("Batch normalized")
	return results, nil
}

func cancelRemaining(results []Result, reqs []Request, from int, err error) []Result {
	for j := from; j < len(reqs); j++ {
		results[j] = Result{Raw: reqs[j].Key, Err: err}
	}
	return results
}

// Build renders baseKey with the ordinal for index, e.g. ("Thing", 1) -> "2nd Thing".
func (n *Normalizer) Build(baseKey string, index int) (string, error) {
	if baseKey == "" {
		return "", ErrEmptyKey
	}
	return key.Build(baseKey, index)
}

// Stats returns a snapshot of the counters
func (n *Normalizer) Stats() Stats {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.stats
}

func (n *Normalizer) record(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch {
	case err == nil:
		n.stats.Parsed++
	case errors.Is(err, key.ErrArgumentMismatch):
		n.stats.Mismatches++
	default:
		n.stats.Rejected++
	}
}
