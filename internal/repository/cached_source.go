package repository

import (
	"context"
	"time"

	"GreeksBoard/internal/domain/models"
	domrepo "GreeksBoard/internal/domain/repository"
	"GreeksBoard/pkg/cache"
	applogger "GreeksBoard/pkg/logger"
)

// CachedSource keeps the last record set of a source for ttl.
type CachedSource struct {
	next  domrepo.RecordSource
	cache cache.Service
	key   string
	ttl   time.Duration
	l     *applogger.Logger
}

// NewCachedSource wraps next. target names what next reads (spreadsheet or table)
// and separates entries of different sources sharing one cache.
func NewCachedSource(next domrepo.RecordSource, c cache.Service, target string, ttl time.Duration, l *applogger.Logger) *CachedSource {
	if l == nil {
		l = applogger.Nop()
	}
	return &CachedSource{
		next:  next,
		cache: c,
		key:   cache.Key("snapshot", next.Name(), cache.Fingerprint(target)),
		ttl:   ttl,
		l:     l,
	}
}

func (s *CachedSource) Name() string { return s.next.Name() }

func (s *CachedSource) Fetch(ctx context.Context) (*models.RecordSet, error) {
	rs, hit, err := cache.GetOrLoad(ctx, s.cache, s.key, s.ttl, s.next.Fetch)
	if err != nil {
		return nil, err
	}
	s.l.Debug("snapshot lookup", applogger.String("key", s.key), applogger.Bool("hit", hit))
	return rs, nil
}
