package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/dto"
	appErrors "github.com/noah-isme/academic-planner-api/pkg/errors"
	"github.com/noah-isme/academic-planner-api/pkg/middleware/requestid"
)

const snapshotKeyPrefix = "snapshot:"

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService keeps per-user planner snapshots in the cache backend. A nil or
// disabled service behaves as a permanent miss.
//
// Each user has an in-process generation bumped by InvalidateUser. A snapshot
// is only written back if the generation it was loaded under is still current.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool

	mu          sync.Mutex
	generations map[string]uint64
}

// NewCacheService constructs a snapshot cache.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{
		repo:        repo,
		metrics:     metrics,
		defaultTTL:  defaultTTL,
		logger:      logger,
		enabled:     enabled,
		generations: make(map[string]uint64),
	}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Generation returns the user's current invalidation generation. Read it
// before loading from the store and pass it to StoreSnapshot.
func (s *CacheService) Generation(userID string) uint64 {
	if !s.Enabled() {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userID]
}

func (s *CacheService) bump(userID string) {
	s.mu.Lock()
	s.generations[userID]++
	s.mu.Unlock()
}

func snapshotKey(userID string) string {
	return snapshotKeyPrefix + userID
}

// Snapshot returns the cached records of the user, if any. Backend failures
// are logged and reported as a miss so reads fall through to the store.
func (s *CacheService) Snapshot(ctx context.Context, userID string) (*dto.PlannerSnapshot, bool) {
	if !s.Enabled() {
		return nil, false
	}
	var snapshot dto.PlannerSnapshot
	start := time.Now()
	err := s.repo.Get(ctx, snapshotKey(userID), &snapshot)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("snapshot cache read failed",
				zap.String("user_id", userID),
				zap.String("request_id", requestid.FromContext(ctx)),
				zap.Error(err),
			)
		}
		return nil, false
	}
	return &snapshot, true
}

// StoreSnapshot caches the user's records unless the user was invalidated
// after generation was read. ttl <= 0 uses the configured default.
func (s *CacheService) StoreSnapshot(ctx context.Context, userID string, generation uint64, snapshot *dto.PlannerSnapshot, ttl time.Duration) error {
	if !s.Enabled() || snapshot == nil {
		return nil
	}
	if current := s.Generation(userID); current != generation {
		s.logger.Debug("snapshot superseded by a write, not caching",
			zap.String("user_id", userID),
			zap.Uint64("generation", generation),
			zap.Uint64("current", current),
		)
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, snapshotKey(userID), snapshot, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("snapshot cache write failed",
			zap.String("user_id", userID),
			zap.String("request_id", requestid.FromContext(ctx)),
			zap.Error(err),
		)
	}
	return err
}

// InvalidateUser drops every snapshot cached for the user.
func (s *CacheService) InvalidateUser(ctx context.Context, userID string) error {
	if !s.Enabled() {
		return nil
	}
	s.bump(userID)
	pattern := snapshotKey(userID) + "*"
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("snapshot cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}
