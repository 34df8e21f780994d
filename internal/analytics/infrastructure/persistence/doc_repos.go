package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/imsachin001/chronosync/internal/analytics/domain"
	"github.com/imsachin001/chronosync/internal/shared/infrastructure/docstore"
)

// Collection names used in document stores.
const (
	CollectionStats           = "user_stats"
	CollectionProductivity    = "productivity_scores"
	CollectionStreaks         = "completion_streaks"
	CollectionCompletionTimes = "completion_times"
	CollectionBadges          = "user_badges"
)

func weekKey(userID uuid.UUID, weekStart string) string {
	return userID.String() + ":" + weekStart
}

func taskKey(userID, taskID uuid.UUID) string {
	return userID.String() + ":" + taskID.String()
}

// docRepo stores one JSON document per key in a single collection.
type docRepo[T any] struct {
	store      docstore.Store
	collection string
}

func (r docRepo[T]) find(ctx context.Context, key string) (*T, error) {
	raw, err := r.store.Get(ctx, r.collection, key)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, domain.ErrLedgerNotFound
	}
	if err != nil {
		return nil, err
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", r.collection, key, err)
	}
	return v, nil
}

func (r docRepo[T]) put(ctx context.Context, key string, v *T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", r.collection, key, err)
	}
	return r.store.Put(ctx, r.collection, key, raw)
}

// getOrCreate inserts fresh unless the key exists, then re-reads, so a
// concurrent first write for the same user resolves to a single document.
func (r docRepo[T]) getOrCreate(ctx context.Context, key string, fresh *T) (*T, error) {
	raw, err := json.Marshal(fresh)
	if err != nil {
		return nil, fmt.Errorf("encode %s/%s: %w", r.collection, key, err)
	}
	if _, err := r.store.PutIfAbsent(ctx, r.collection, key, raw); err != nil {
		return nil, err
	}
	return r.find(ctx, key)
}

func (r docRepo[T]) scan(ctx context.Context, prefix string) ([]*T, error) {
	entries, err := r.store.Scan(ctx, r.collection, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(entries))
	for _, e := range entries {
		v := new(T)
		if err := json.Unmarshal(e.Value, v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", r.collection, e.Key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// DocStatsRepository implements domain.StatsRepository on a document store.
type DocStatsRepository struct {
	docs docRepo[domain.StatsLedger]
}

func NewDocStatsRepository(store docstore.Store) *DocStatsRepository {
	return &DocStatsRepository{docs: docRepo[domain.StatsLedger]{store: store, collection: CollectionStats}}
}

func (r *DocStatsRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.StatsLedger, error) {
	l, err := r.docs.getOrCreate(ctx, userID.String(), domain.NewStatsLedger(userID))
	if err != nil {
		return nil, err
	}
	return normalizeStats(l), nil
}

func (r *DocStatsRepository) Find(ctx context.Context, userID uuid.UUID) (*domain.StatsLedger, error) {
	l, err := r.docs.find(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	return normalizeStats(l), nil
}

func (r *DocStatsRepository) Save(ctx context.Context, l *domain.StatsLedger) error {
	l.UpdatedAt = time.Now().UTC()
	return r.docs.put(ctx, l.UserID.String(), l)
}

func (r *DocStatsRepository) ListAll(ctx context.Context) ([]*domain.StatsLedger, error) {
	all, err := r.docs.scan(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, l := range all {
		normalizeStats(l)
	}
	return all, nil
}

func normalizeStats(l *domain.StatsLedger) *domain.StatsLedger {
	if l.DailyStats == nil {
		l.DailyStats = []domain.DailyStats{}
	}
	if l.CategoryCompletions == nil {
		l.CategoryCompletions = make(map[string]int)
	}
	return l
}

// DocProductivityRepository implements domain.ProductivityRepository on a document store.
type DocProductivityRepository struct {
	docs docRepo[domain.ProductivityWeek]
}

func NewDocProductivityRepository(store docstore.Store) *DocProductivityRepository {
	return &DocProductivityRepository{docs: docRepo[domain.ProductivityWeek]{store: store, collection: CollectionProductivity}}
}

func (r *DocProductivityRepository) GetOrCreateWeek(ctx context.Context, userID uuid.UUID, weekStart string) (*domain.ProductivityWeek, error) {
	return r.docs.getOrCreate(ctx, weekKey(userID, weekStart), domain.NewProductivityWeek(userID, weekStart))
}

func (r *DocProductivityRepository) FindWeek(ctx context.Context, userID uuid.UUID, weekStart string) (*domain.ProductivityWeek, error) {
	return r.docs.find(ctx, weekKey(userID, weekStart))
}

func (r *DocProductivityRepository) Save(ctx context.Context, w *domain.ProductivityWeek) error {
	w.UpdatedAt = time.Now().UTC()
	return r.docs.put(ctx, weekKey(w.UserID, w.WeekStart), w)
}

// DocStreakRepository implements domain.StreakRepository on a document store.
type DocStreakRepository struct {
	docs docRepo[domain.CompletionStreak]
}

func NewDocStreakRepository(store docstore.Store) *DocStreakRepository {
	return &DocStreakRepository{docs: docRepo[domain.CompletionStreak]{store: store, collection: CollectionStreaks}}
}

func (r *DocStreakRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.CompletionStreak, error) {
	s, err := r.docs.getOrCreate(ctx, userID.String(), domain.NewCompletionStreak(userID))
	if err != nil {
		return nil, err
	}
	if s.CompletedDates == nil {
		s.CompletedDates = []string{}
	}
	return s, nil
}

func (r *DocStreakRepository) Find(ctx context.Context, userID uuid.UUID) (*domain.CompletionStreak, error) {
	return r.docs.find(ctx, userID.String())
}

func (r *DocStreakRepository) Save(ctx context.Context, s *domain.CompletionStreak) error {
	s.UpdatedAt = time.Now().UTC()
	return r.docs.put(ctx, s.UserID.String(), s)
}

// DocCompletionTimeRepository implements domain.CompletionTimeRepository on a document store.
type DocCompletionTimeRepository struct {
	docs docRepo[domain.CompletionTimeRecord]
}

func NewDocCompletionTimeRepository(store docstore.Store) *DocCompletionTimeRepository {
	return &DocCompletionTimeRepository{docs: docRepo[domain.CompletionTimeRecord]{store: store, collection: CollectionCompletionTimes}}
}

func (r *DocCompletionTimeRepository) Exists(ctx context.Context, userID, taskID uuid.UUID) (bool, error) {
	_, err := r.docs.find(ctx, taskKey(userID, taskID))
	if errors.Is(err, domain.ErrLedgerNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *DocCompletionTimeRepository) Create(ctx context.Context, rec *domain.CompletionTimeRecord) (bool, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("encode completion time: %w", err)
	}
	return r.docs.store.PutIfAbsent(ctx, CollectionCompletionTimes, taskKey(rec.UserID, rec.TaskID), raw)
}

func (r *DocCompletionTimeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CompletionTimeRecord, error) {
	return r.docs.scan(ctx, userID.String()+":")
}

// DocBadgeRepository implements domain.BadgeRepository on a document store.
type DocBadgeRepository struct {
	docs docRepo[domain.BadgeState]
}

func NewDocBadgeRepository(store docstore.Store) *DocBadgeRepository {
	return &DocBadgeRepository{docs: docRepo[domain.BadgeState]{store: store, collection: CollectionBadges}}
}

func (r *DocBadgeRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.BadgeState, error) {
	b, err := r.docs.getOrCreate(ctx, userID.String(), domain.NewBadgeState(userID))
	if err != nil {
		return nil, err
	}
	if b.BadgesEarned == nil {
		b.BadgesEarned = []domain.EarnedBadge{}
	}
	return b, nil
}

func (r *DocBadgeRepository) Find(ctx context.Context, userID uuid.UUID) (*domain.BadgeState, error) {
	return r.docs.find(ctx, userID.String())
}

func (r *DocBadgeRepository) Save(ctx context.Context, b *domain.BadgeState) error {
	b.UpdatedAt = time.Now().UTC()
	return r.docs.put(ctx, b.UserID.String(), b)
}

func (r *DocBadgeRepository) ListAll(ctx context.Context) ([]*domain.BadgeState, error) {
	return r.docs.scan(ctx, "")
}
