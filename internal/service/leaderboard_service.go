package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"qr_quiz_backend/internal/config"
	"qr_quiz_backend/internal/model"
	"qr_quiz_backend/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const leaderboardCacheKey = "leaderboard:top"

// LeaderboardService merges anonymous players (running total on the row)
// with registered users (summed from their attempts) into one ranking.
type LeaderboardService struct {
	AnonRepo    *repository.AnonymousStudentRepository
	UserRepo    *repository.UserRepository
	AttemptRepo *repository.AttemptRepository
	Redis       *redis.Client
	Config      *config.Config
}

func NewLeaderboardService(
	anonRepo *repository.AnonymousStudentRepository,
	userRepo *repository.UserRepository,
	attemptRepo *repository.AttemptRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *LeaderboardService {
	return &LeaderboardService{
		AnonRepo:    anonRepo,
		UserRepo:    userRepo,
		AttemptRepo: attemptRepo,
		Redis:       rdb,
		Config:      cfg,
	}
}

type LeaderboardEntry struct {
	DisplayName string `json:"display_name"`
	TotalPoints int    `json:"total_points"`
	Registered  bool   `json:"registered"`
	Rank        int    `json:"rank"`
}

// Top returns the highest-scoring players, at most limit entries. Results
// are cached briefly; a stale board is acceptable, a slow scan page is not.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				if len(entries) > limit {
					entries = entries[:limit]
				}
				return entries, nil
			}
		} else if err != redis.Nil {
			zap.L().Warn("leaderboard cache read failed", zap.Error(err))
		}
	}

	entries, err := s.build(limit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		ttl := time.Duration(s.Config.Scan.LeaderboardCacheTTL) * time.Second
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, leaderboardCacheKey, payload, ttl).Err(); err != nil {
				zap.L().Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}
	return entries, nil
}

func (s *LeaderboardService) build(limit int) ([]LeaderboardEntry, error) {
	anons, err := s.AnonRepo.ListTop(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(anons))
	for _, a := range anons {
		entries = append(entries, LeaderboardEntry{
			DisplayName: a.DisplayName,
			TotalPoints: a.TotalPoints,
		})
	}

	students, err := s.UserRepo.ListByRole(model.Student)
	if err != nil {
		return nil, err
	}
	for _, u := range students {
		total, err := s.AttemptRepo.SumScoreByUser(u.ID)
		if err != nil {
			return nil, err
		}
		if total == 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			DisplayName: u.Name,
			TotalPoints: total,
			Registered:  true,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// Invalidate drops the cached board. Called after submissions so fresh
// scores show up within one request rather than one TTL.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, leaderboardCacheKey).Err(); err != nil {
		zap.L().Warn("leaderboard cache invalidation failed", zap.Error(err))
	}
}
