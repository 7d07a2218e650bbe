package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/store"
	"github.com/rs/zerolog"
)

// KindService hands out the kind reference table as an immutable snapshot.
// The table changes rarely, so one snapshot is shared until it expires.
type KindService struct {
	repo  store.KindReader
	cache *ristretto.Cache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewKindService(repo store.KindReader, ttl time.Duration, log zerolog.Logger) (*KindService, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10000, // number of keys to track frequency of
		MaxCost:            10000,
		BufferItems:        64, // number of keys per Get buffer
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize kind cache: %w", err)
	}

	return &KindService{repo: repo, cache: cache, ttl: ttl, log: log}, nil
}

func (s *KindService) Snapshot(ctx context.Context) (model.KindLookup, error) {
	if v, ok := s.cache.Get(constants.KindCacheKey); ok {
		if kinds, ok := v.(model.KindLookup); ok {
			return kinds, nil
		}
	}

	list, err := s.repo.ListKinds(ctx)
	if err != nil {
		return model.KindLookup{}, fmt.Errorf("failed to load kinds: %w", err)
	}

	kinds := model.NewKindLookup(list)
	s.cache.SetWithTTL(constants.KindCacheKey, kinds, 1, s.ttl)
	s.cache.Wait()

	s.log.Debug().Int("count", kinds.Len()).Msg("kind snapshot loaded")
	return kinds, nil
}

// Invalidate drops the cached snapshot; the next Snapshot reloads it.
func (s *KindService) Invalidate() {
	s.cache.Del(constants.KindCacheKey)
}

func (s *KindService) Close() {
	s.cache.Close()
}
