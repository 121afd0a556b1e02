package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kakao-fortune-bot/internal/domain"
	"kakao-fortune-bot/internal/infra/metrics"
)

// Postgres는 pgxpool 기반의 저장소 어댑터다.
type Postgres struct {
	pool *pgxpool.Pool
}

var (
	_ domain.UserRepo         = (*Postgres)(nil)
	_ domain.ConversationRepo = (*Postgres)(nil)
	_ domain.FortuneCache     = (*Postgres)(nil)
)

// NewPostgres는 저장소 어댑터를 생성한다.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) connCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, 5*time.Second)
}

// UpsertByKakaoKey는 domain.UserRepo를 구현한다.
// 저장된 생년월일과 다를 때만 갱신한다.
func (p *Postgres) UpsertByKakaoKey(ctx context.Context, kakaoUserKey, birthDate, birthTime string) (domain.User, error) {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	var user domain.User
	start := time.Now()
	err := p.pool.QueryRow(ctx, `
INSERT INTO users (id, kakao_user_key, birth_date, birth_time)
VALUES ($1, $2, $3, NULLIF($4, ''))
ON CONFLICT (kakao_user_key) DO UPDATE
SET birth_date = EXCLUDED.birth_date, birth_time = EXCLUDED.birth_time, updated_at = now()
WHERE users.birth_date IS DISTINCT FROM EXCLUDED.birth_date
RETURNING id, kakao_user_key, birth_date, COALESCE(birth_time, ''), created_at, updated_at
`, uuid.New(), kakaoUserKey, birthDate, birthTime).Scan(
		&user.ID, &user.KakaoUserKey, &user.BirthDate, &user.BirthTime, &user.CreatedAt, &user.UpdatedAt)
	metrics.ObserveNetworkRequest("postgres", "users_upsert", "users", start, err)
	if errors.Is(err, pgx.ErrNoRows) {
		// 생년월일이 동일해 갱신이 생략된 경우. 기존 레코드를 그대로 반환한다.
		return p.GetByKakaoKey(ctx, kakaoUserKey)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("사용자 upsert: %w", err)
	}
	return user, nil
}

// GetByKakaoKey는 카카오 사용자 키로 사용자를 조회한다.
func (p *Postgres) GetByKakaoKey(ctx context.Context, kakaoUserKey string) (domain.User, error) {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	var user domain.User
	start := time.Now()
	err := p.pool.QueryRow(ctx, `
SELECT id, kakao_user_key, birth_date, COALESCE(birth_time, ''), created_at, updated_at
FROM users WHERE kakao_user_key = $1
`, kakaoUserKey).Scan(
		&user.ID, &user.KakaoUserKey, &user.BirthDate, &user.BirthTime, &user.CreatedAt, &user.UpdatedAt)
	metrics.ObserveNetworkRequest("postgres", "users_get", "users", start, err)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("사용자 조회: %w", err)
	}
	return user, nil
}

// SaveConversation은 요청/응답 한 쌍을 기록한다.
func (p *Postgres) SaveConversation(ctx context.Context, userID uuid.UUID, message, response string, horizon domain.Horizon) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `
INSERT INTO conversations (id, user_id, message, response, fortune_type)
VALUES ($1, $2, $3, $4, $5)
`, uuid.New(), userID, message, response, string(horizon))
	metrics.ObserveNetworkRequest("postgres", "conversations_insert", "conversations", start, err)
	if err != nil {
		return fmt.Errorf("대화 기록 저장: %w", err)
	}
	return nil
}

// ListRecentConversations는 최근 대화 기록을 최신순으로 반환한다.
// 웹훅 요청 경로에서는 사용되지 않고 외부 이력 조회 전용이다.
func (p *Postgres) ListRecentConversations(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Conversation, error) {
	if limit <= 0 {
		limit = 10
	}
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	rows, err := p.pool.Query(ctx, `
SELECT id, user_id, message, response, COALESCE(fortune_type, ''), created_at
FROM conversations
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2
`, userID, limit)
	metrics.ObserveNetworkRequest("postgres", "conversations_list", "conversations", start, err)
	if err != nil {
		return nil, fmt.Errorf("대화 기록 조회: %w", err)
	}
	defer rows.Close()

	var out []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		var fortuneType string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Message, &c.Response, &fortuneType, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("대화 기록 스캔: %w", err)
		}
		c.FortuneType = domain.Horizon(fortuneType)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get은 domain.FortuneCache를 구현한다. 만료된 항목은 삭제 후 미스로 처리한다.
func (p *Postgres) Get(ctx context.Context, userID uuid.UUID, horizon domain.Horizon) (string, bool, error) {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	var entry domain.CacheEntry
	start := time.Now()
	err := p.pool.QueryRow(ctx, `
SELECT content, expires_at FROM fortune_cache
WHERE user_id = $1 AND fortune_type = $2
`, userID, string(horizon)).Scan(&entry.Content, &entry.ExpiresAt)
	metrics.ObserveNetworkRequest("postgres", "fortune_cache_get", "fortune_cache", start, err)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("캐시 조회: %w", err)
	}
	if entry.Expired(time.Now()) {
		start = time.Now()
		_, delErr := p.pool.Exec(ctx, `
DELETE FROM fortune_cache WHERE user_id = $1 AND fortune_type = $2
`, userID, string(horizon))
		metrics.ObserveNetworkRequest("postgres", "fortune_cache_delete", "fortune_cache", start, delErr)
		return "", false, nil
	}
	return entry.Content, true, nil
}

// Put은 기존 항목을 삭제하고 새 항목을 삽입한다.
func (p *Postgres) Put(ctx context.Context, userID uuid.UUID, horizon domain.Horizon, content string) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `
DELETE FROM fortune_cache WHERE user_id = $1 AND fortune_type = $2
`, userID, string(horizon))
	metrics.ObserveNetworkRequest("postgres", "fortune_cache_delete", "fortune_cache", start, err)
	if err != nil {
		return fmt.Errorf("캐시 삭제: %w", err)
	}

	start = time.Now()
	_, err = p.pool.Exec(ctx, `
INSERT INTO fortune_cache (id, user_id, fortune_type, content, expires_at)
VALUES ($1, $2, $3, $4, $5)
`, uuid.New(), userID, string(horizon), content, time.Now().Add(horizon.TTL()))
	metrics.ObserveNetworkRequest("postgres", "fortune_cache_insert", "fortune_cache", start, err)
	if err != nil {
		return fmt.Errorf("캐시 저장: %w", err)
	}
	return nil
}
