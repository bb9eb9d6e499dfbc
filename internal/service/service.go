package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/domain"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/engine"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/events"
	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/metrics"
)

const (
	defaultLimit      = 20
	maxLimit          = 50
	candidatePoolSize = 500
)

// Repository is the persistence surface the service needs.
type Repository interface {
	GetUserVector(ctx context.Context, userID int64) (*domain.UserVector, error)
	GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
	ListCandidates(ctx context.Context, dom string, userID int64, limit int) ([]engine.Item, error)
	AddInteraction(ctx context.Context, in domain.Interaction) error
}

// Cache is the precomputed-result store.
type Cache interface {
	Get(ctx context.Context, userID int64, dom string, limit int) (*domain.RecommendationResult, bool, error)
	Set(ctx context.Context, res *domain.RecommendationResult, limit int) error
	InvalidateUser(ctx context.Context, userID int64) error
}

// Publisher emits lifecycle events.
type Publisher interface {
	PublishGenerated(ev events.RecommendationsGenerated) error
	PublishInteraction(ev events.InteractionRecorded) error
}

// BatchOptions tune a precompute run.
type BatchOptions struct {
	PageSize    int
	Concurrency int
	ResultLimit int
}

type Service struct {
	repo    Repository
	cache   Cache
	bus     Publisher
	engines map[string]*engine.Engine
	log     zerolog.Logger
}

func New(repo Repository, cache Cache, bus Publisher, engines []*engine.Engine, log zerolog.Logger) *Service {
	byDomain := make(map[string]*engine.Engine, len(engines))
	for _, e := range engines {
		byDomain[e.Domain()] = e
	}
	return &Service{
		repo:    repo,
		cache:   cache,
		bus:     bus,
		engines: byDomain,
		log:     log.With().Str("component", "service").Logger(),
	}
}

// Domains lists the inventory types with a registered engine.
func (s *Service) Domains() []string {
	out := make([]string, 0, len(s.engines))
	for d := range s.engines {
		out = append(out, d)
	}
	return out
}

// Recommend produces a ranked list for one user in one domain. Results
// are cached only for context-free calls: a trip context personalizes
// scoring beyond what a shared cache entry can represent.
func (s *Service) Recommend(ctx context.Context, userID int64, dom string, trip *engine.TripContext, limit int) (*domain.RecommendationResult, error) {
	eng, ok := s.engines[dom]
	if !ok {
		return nil, fmt.Errorf("recommend: %w: %s", domain.ErrUnknownDomain, dom)
	}

	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}

	cacheable := trip == nil
	if cacheable {
		cached, found, err := s.cache.Get(ctx, userID, dom, limit)
		if err != nil {
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache get failed")
		}
		if found {
			metrics.CacheHits.Inc()
			cached.FromCache = true
			return cached, nil
		}
		metrics.CacheMisses.Inc()
	}

	res, err := s.generate(ctx, eng, userID, dom, trip, limit)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, res, limit); err != nil {
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache set failed")
		}
	}

	metrics.RecommendationsGenerated.WithLabelValues(dom).Inc()
	if err := s.bus.PublishGenerated(events.RecommendationsGenerated{
		UserID:      userID,
		Domain:      dom,
		Count:       len(res.Items),
		GeneratedAt: res.GeneratedAt,
	}); err != nil {
		s.log.Warn().Err(err).Msg("publish generated event failed")
	} else {
		metrics.EventsPublished.WithLabelValues(events.TopicRecommendationsGenerated).Inc()
	}

	return res, nil
}

func (s *Service) generate(ctx context.Context, eng *engine.Engine, userID int64, dom string, trip *engine.TripContext, limit int) (*domain.RecommendationResult, error) {
	uv, err := s.repo.GetUserVector(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrVectorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch user vector: %w", err)
	}

	items, err := s.repo.ListCandidates(ctx, dom, userID, candidatePoolSize)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	resp, err := eng.Recommend(engine.Request{
		UserVector: engine.Vector(uv.Vector),
		Segment:    uv.PrimarySegment,
		Items:      items,
		Trip:       trip,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}

	for _, ie := range resp.Errors {
		metrics.ItemErrors.WithLabelValues(dom, ie.Stage.String()).Inc()
		s.log.Warn().Err(ie.Err).Str("item_id", ie.ItemID).Str("stage", ie.Stage.String()).Msg("candidate dropped")
	}

	out := &domain.RecommendationResult{
		UserID:      userID,
		Domain:      dom,
		Items:       make([]domain.RecommendationItem, 0, len(resp.Results)),
		GeneratedAt: time.Now().UTC(),
	}
	for _, sc := range resp.Results {
		out.Items = append(out.Items, domain.RecommendationItem{
			ItemID:       sc.Item.Meta().ID,
			Domain:       dom,
			Rank:         sc.Rank,
			Score:        sc.Breakdown.Final,
			Similarity:   sc.Breakdown.Similarity,
			Popularity:   sc.Breakdown.Popularity,
			Quality:      sc.Breakdown.Quality,
			Contextual:   sc.Breakdown.Contextual,
			SegmentBoost: sc.Breakdown.SegmentBoost,
			Reasons:      sc.Reasons,
		})
	}
	return out, nil
}

// PrecomputeAll walks every profiled user and refreshes their cached
// recommendations for every registered domain.
func (s *Service) PrecomputeAll(ctx context.Context, opts BatchOptions) (*domain.BatchSummary, error) {
	start := time.Now()

	if opts.PageSize <= 0 {
		opts.PageSize = 200
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.ResultLimit <= 0 {
		opts.ResultLimit = defaultLimit
	}

	total, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	summary := &domain.BatchSummary{Users: total}
	sem := make(chan struct{}, opts.Concurrency)
	var mu sync.Mutex

	for page := 1; ; page++ {
		userIDs, err := s.repo.GetUserIDsPaginated(ctx, page, opts.PageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch user ids page %d: %w", page, err)
		}
		if len(userIDs) == 0 {
			break
		}

		var wg sync.WaitGroup
		for _, userID := range userIDs {
			wg.Add(1)
			go func(uid int64) {
				defer wg.Done()
				sem <- struct{}{}        // acquire
				defer func() { <-sem }() // release

				failed := false
				for dom := range s.engines {
					if _, err := s.refreshUser(ctx, uid, dom, opts.ResultLimit); err != nil {
						s.log.Warn().Err(err).Int64("user_id", uid).Str("domain", dom).Msg("precompute failed")
						failed = true
					}
				}

				mu.Lock()
				if failed {
					summary.Failed++
				} else {
					summary.Succeeded++
				}
				mu.Unlock()
			}(userID)
		}
		wg.Wait()

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	summary.Elapsed = time.Since(start)
	metrics.BatchDuration.Observe(summary.Elapsed.Seconds())
	metrics.BatchUsersFailed.Add(float64(summary.Failed))

	s.log.Info().
		Int("users", summary.Users).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Dur("elapsed", summary.Elapsed).
		Msg("precompute run complete")
	return summary, nil
}

// refreshUser recomputes and re-caches one user's list, bypassing any
// existing cache entry.
func (s *Service) refreshUser(ctx context.Context, userID int64, dom string, limit int) (*domain.RecommendationResult, error) {
	eng := s.engines[dom]
	res, err := s.generate(ctx, eng, userID, dom, nil, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, res, limit); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache set failed")
	}
	metrics.RecommendationsGenerated.WithLabelValues(dom).Inc()
	return res, nil
}

// RecordInteraction stores a user action and invalidates their cached
// lists, since booked and rejected items leave the candidate pool.
func (s *Service) RecordInteraction(ctx context.Context, in domain.Interaction) error {
	if !domain.ValidInteractionType(in.Type) {
		return fmt.Errorf("record interaction: unknown type %q", in.Type)
	}
	if err := s.repo.AddInteraction(ctx, in); err != nil {
		return err
	}
	if err := s.cache.InvalidateUser(ctx, in.UserID); err != nil {
		s.log.Warn().Err(err).Int64("user_id", in.UserID).Msg("cache invalidation failed")
	}
	if err := s.bus.PublishInteraction(events.InteractionRecorded{
		UserID: in.UserID,
		ItemID: in.ItemID,
		Domain: in.Domain,
		Type:   in.Type,
		At:     time.Now().UTC(),
	}); err != nil {
		s.log.Warn().Err(err).Msg("publish interaction event failed")
	} else {
		metrics.EventsPublished.WithLabelValues(events.TopicInteractionRecorded).Inc()
	}
	return nil
}
