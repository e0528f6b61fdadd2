package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cadastro-social/internal/domain"
	"cadastro-social/internal/repository"
)

const (
	cacheKey = "dashboard:summary"
	cacheTTL = 60 * time.Second
)

// Summary is the staff landing-page aggregate.
type Summary struct {
	Total      int64                   `json:"total"`
	ByStatus   map[domain.Status]int64 `json:"by_status"`
	OpenCases  int64                   `json:"open_cases"`
	ComputedAt time.Time               `json:"computed_at"`
}

type Service interface {
	Summary(ctx context.Context, actor *domain.Profile) (*Summary, error)
}

type service struct {
	regRepo repository.RegistrationRepository
	redis   *redis.Client
}

func NewService(regRepo repository.RegistrationRepository, redisClient *redis.Client) Service {
	return &service{
		regRepo: regRepo,
		redis:   redisClient,
	}
}

// Summary serves from a short Redis cache so dashboard refreshes do not
// hammer the counts query. The cache is a pure read-through; a Redis
// outage degrades to direct queries.
func (s *service) Summary(ctx context.Context, actor *domain.Profile) (*Summary, error) {
	if !actor.Role.IsStaff() {
		return nil, fmt.Errorf("staff only: %w", domain.ErrForbidden)
	}

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var summary Summary
			if json.Unmarshal(cached, &summary) == nil {
				return &summary, nil
			}
		}
	}

	counts, err := s.regRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		ByStatus:   counts,
		ComputedAt: time.Now().UTC(),
	}
	for status, n := range counts {
		summary.Total += n
		if status != domain.StatusApproved && status != domain.StatusRejected {
			summary.OpenCases += n
		}
	}

	if s.redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			_ = s.redis.Set(ctx, cacheKey, payload, cacheTTL).Err()
		}
	}
	return summary, nil
}
