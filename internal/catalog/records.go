package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lustraclean/vitrine/internal/cache"
	"github.com/lustraclean/vitrine/internal/source"
	"github.com/lustraclean/vitrine/pkg/fallback"
	"github.com/lustraclean/vitrine/pkg/models"
)

// DefaultTTL is the maximum age at which a cached load is still served.
const DefaultTTL = 5 * time.Minute

// cacheKey is the fixed key under which the load envelope is persisted.
const cacheKey = "catalog.records"

// ErrSourceUnavailable is the advisory warning attached to a load that
// degraded to the fallback set because the remote source failed.
var ErrSourceUnavailable = errors.New("catalog: record source unavailable")

// Origin identifies where a load's records came from.
type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginCache    Origin = "cache"
	OriginFallback Origin = "fallback"
)

// cacheEnvelope is the {data, timestamp} JSON shape persisted in the
// cache store. Timestamp is milliseconds since the Unix epoch.
type cacheEnvelope struct {
	Data      []models.ServiceRecord `json:"data"`
	Timestamp int64                  `json:"timestamp"`
}

// RecordStore produces the full (unfiltered) record collection,
// preferring a valid cache entry, then a remote fetch, then the embedded
// fallback set. No failure crosses this boundary as a hard error: Load
// always returns a non-empty collection.
type RecordStore struct {
	source   source.RecordSource
	cache    cache.Store
	fallback *fallback.Set
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// RecordStoreOptions configures a RecordStore.
type RecordStoreOptions struct {
	// TTL bounds cache entry age. Defaults to DefaultTTL.
	TTL time.Duration
	// Now is the time source, injectable for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewRecordStore creates a RecordStore over the given collaborators.
func NewRecordStore(src source.RecordSource, kv cache.Store, fb *fallback.Set, opts RecordStoreOptions, logger *zap.Logger) *RecordStore {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &RecordStore{
		source:   src,
		cache:    kv,
		fallback: fb,
		ttl:      opts.TTL,
		now:      opts.Now,
		logger:   logger,
	}
}

// Load returns the current unfiltered record collection and its origin.
// The returned error is advisory only (the fallback set was substituted);
// callers surface it as a warning, never as a failure.
func (s *RecordStore) Load(ctx context.Context, forceRefresh bool) ([]models.ServiceRecord, Origin, error) {
	if !forceRefresh {
		if records, ok := s.readCache(ctx); ok {
			return records, OriginCache, nil
		}
	}

	raws, err := s.source.FetchRecords(ctx)
	if err != nil || len(raws) == 0 {
		if err == nil {
			err = source.ErrEmptyResult
		}
		s.logger.Warn("record source unavailable, serving fallback set", zap.Error(err))
		return s.fallbackRecords(), OriginFallback, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	records := make([]models.ServiceRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, normalizeRecord(raw))
	}

	s.writeCache(ctx, records)
	return records, OriginRemote, nil
}

// readCache returns the cached records if a valid, unexpired entry exists.
// Corrupt or stale entries are discarded (deleted) and treated as a miss.
func (s *RecordStore) readCache(ctx context.Context) ([]models.ServiceRecord, bool) {
	value, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			s.logger.Warn("cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var env cacheEnvelope
	if err := json.Unmarshal([]byte(value), &env); err != nil || len(env.Data) == 0 {
		s.logger.Debug("discarding corrupt cache entry", zap.Error(err))
		s.discard(ctx)
		return nil, false
	}

	age := s.now().UTC().Sub(time.UnixMilli(env.Timestamp))
	if age > s.ttl {
		s.logger.Debug("discarding expired cache entry", zap.Duration("age", age))
		s.discard(ctx)
		return nil, false
	}

	return env.Data, true
}

// writeCache persists a successful non-empty load. Write failures are
// logged and swallowed: the fresh records are still served.
func (s *RecordStore) writeCache(ctx context.Context, records []models.ServiceRecord) {
	env := cacheEnvelope{Data: records, Timestamp: s.now().UTC().UnixMilli()}
	value, err := json.Marshal(env)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, cacheKey, string(value)); err != nil {
		s.logger.Warn("cache write failed", zap.Error(err))
	}
}

func (s *RecordStore) discard(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		s.logger.Warn("cache discard failed", zap.Error(err))
	}
}

// fallbackRecords returns the embedded set. The embedded YAML is part of
// the binary; a parse failure here is a build defect, so it degrades to
// an empty slice rather than panicking.
func (s *RecordStore) fallbackRecords() []models.ServiceRecord {
	records, err := s.fallback.Records()
	if err != nil {
		s.logger.Error("fallback set unavailable", zap.Error(err))
		return []models.ServiceRecord{}
	}
	return records
}
