package fortune

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kakao-fortune-bot/internal/domain"
)

type stubUserRepo struct {
	user domain.User
	err  error
}

func (s *stubUserRepo) UpsertByKakaoKey(context.Context, string, string, string) (domain.User, error) {
	return s.user, s.err
}

func (s *stubUserRepo) GetByKakaoKey(context.Context, string) (domain.User, error) {
	return s.user, s.err
}

type stubConversationRepo struct {
	saved   int
	saveErr error
}

func (s *stubConversationRepo) SaveConversation(context.Context, uuid.UUID, string, string, domain.Horizon) error {
	s.saved++
	return s.saveErr
}

func (s *stubConversationRepo) ListRecentConversations(context.Context, uuid.UUID, int) ([]domain.Conversation, error) {
	return nil, nil
}

type memCacheKey struct {
	userID  uuid.UUID
	horizon domain.Horizon
}

type memCache struct {
	entries map[memCacheKey]string
	getErr  error
	putErr  error
	puts    int
}

func newMemCache() *memCache {
	return &memCache{entries: map[memCacheKey]string{}}
}

func (c *memCache) Get(_ context.Context, userID uuid.UUID, horizon domain.Horizon) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	content, ok := c.entries[memCacheKey{userID, horizon}]
	return content, ok, nil
}

func (c *memCache) Put(_ context.Context, userID uuid.UUID, horizon domain.Horizon, content string) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	c.entries[memCacheKey{userID, horizon}] = content
	return nil
}

type stubGenerator struct {
	calls int
	text  string
}

func (g *stubGenerator) Generate(context.Context, string, string, domain.Horizon) string {
	g.calls++
	return g.text
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.t }

func newTestService(users *stubUserRepo, convs *stubConversationRepo, cache *memCache, gen *stubGenerator) *Service {
	clock := fixedClock{t: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)}
	return NewService(users, convs, cache, gen, clock, zerolog.Nop())
}

func testUser() domain.User {
	return domain.User{ID: uuid.New(), KakaoUserKey: "kakao-1", BirthDate: "1990-01-01"}
}

func TestProcessRequestGeneratesAndCaches(t *testing.T) {
	users := &stubUserRepo{user: testUser()}
	convs := &stubConversationRepo{}
	cache := newMemCache()
	gen := &stubGenerator{text: "오늘은 맑음"}
	svc := newTestService(users, convs, cache, gen)

	got := svc.ProcessRequest(context.Background(), "kakao-1", "오늘의 운세", "1990-01-01", "14:30")

	if gen.calls != 1 {
		t.Fatalf("생성기는 한 번 호출되어야 합니다, 호출 수: %d", gen.calls)
	}
	if !strings.Contains(got, "오늘은 맑음") {
		t.Fatalf("생성된 텍스트가 응답에 없습니다: %s", got)
	}
	if !strings.HasPrefix(got, "📅 1990년 1월 1일생 14:30시") {
		t.Fatalf("생년월일 요약이 앞에 붙어야 합니다: %s", got)
	}
	if !strings.Contains(got, "말띠") || !strings.Contains(got, "염소자리") {
		t.Fatalf("띠와 별자리가 요약에 없습니다: %s", got)
	}
	if !strings.Contains(got, "한국나이 37세(만 36세)") {
		t.Fatalf("나이 표기가 다릅니다: %s", got)
	}
	if cache.puts != 1 {
		t.Fatalf("캐시에 한 번 저장되어야 합니다")
	}
	if cached := cache.entries[memCacheKey{users.user.ID, domain.HorizonDaily}]; cached != got {
		t.Fatalf("캐시에는 요약이 포함된 전체 텍스트가 저장되어야 합니다")
	}
	if convs.saved != 1 {
		t.Fatalf("대화 기록이 저장되어야 합니다")
	}
}

func TestProcessRequestCacheHitSkipsGenerator(t *testing.T) {
	users := &stubUserRepo{user: testUser()}
	convs := &stubConversationRepo{}
	cache := newMemCache()
	gen := &stubGenerator{text: "새 운세"}
	svc := newTestService(users, convs, cache, gen)

	first := svc.ProcessRequest(context.Background(), "kakao-1", "오늘의 운세", "1990-01-01", "")
	second := svc.ProcessRequest(context.Background(), "kakao-1", "오늘의 운세", "1990-01-01", "")

	if gen.calls != 1 {
		t.Fatalf("두 번째 요청은 생성기를 호출하면 안 됩니다, 호출 수: %d", gen.calls)
	}
	if !strings.HasSuffix(second, CachedNotice) {
		t.Fatalf("캐시 응답은 이전 조회 안내로 끝나야 합니다: %s", second)
	}
	if !strings.HasPrefix(second, first) {
		t.Fatalf("캐시 응답은 원래 텍스트에 안내만 덧붙인 것이어야 합니다")
	}
}

func TestProcessRequestUserSaveFailureAborts(t *testing.T) {
	users := &stubUserRepo{err: errors.New("db down")}
	convs := &stubConversationRepo{}
	cache := newMemCache()
	gen := &stubGenerator{text: "운세"}
	svc := newTestService(users, convs, cache, gen)

	got := svc.ProcessRequest(context.Background(), "kakao-1", "오늘의 운세", "1990-01-01", "")

	if got != RetryMessage {
		t.Fatalf("재시도 안내를 기대했지만: %s", got)
	}
	if gen.calls != 0 || cache.puts != 0 || convs.saved != 0 {
		t.Fatalf("사용자 저장 실패 후에는 아무것도 진행되면 안 됩니다")
	}
}

func TestProcessRequestSwallowsBestEffortFailures(t *testing.T) {
	users := &stubUserRepo{user: testUser()}
	convs := &stubConversationRepo{saveErr: errors.New("insert failed")}
	cache := newMemCache()
	cache.putErr = errors.New("cache down")
	gen := &stubGenerator{text: "운세 내용"}
	svc := newTestService(users, convs, cache, gen)

	got := svc.ProcessRequest(context.Background(), "kakao-1", "올해 운세", "1990-01-01", "")

	if !strings.Contains(got, "운세 내용") {
		t.Fatalf("캐시/대화 저장 실패는 응답에 영향을 주면 안 됩니다: %s", got)
	}
}

func TestProcessRequestCacheErrorIsMiss(t *testing.T) {
	users := &stubUserRepo{user: testUser()}
	convs := &stubConversationRepo{}
	cache := newMemCache()
	cache.getErr = errors.New("cache down")
	gen := &stubGenerator{text: "운세 내용"}
	svc := newTestService(users, convs, cache, gen)

	got := svc.ProcessRequest(context.Background(), "kakao-1", "오늘의 운세", "1990-01-01", "")

	if gen.calls != 1 {
		t.Fatalf("캐시 조회 실패는 미스로 처리되어야 합니다")
	}
	if strings.HasSuffix(got, CachedNotice) {
		t.Fatalf("미스 응답에 이전 조회 안내가 붙으면 안 됩니다")
	}
}
