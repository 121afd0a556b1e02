// Package fortune은 운세 요청 처리의 오케스트레이션을 담당한다.
package fortune

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"kakao-fortune-bot/internal/calendar"
	"kakao-fortune-bot/internal/domain"
	"kakao-fortune-bot/internal/infra/metrics"
)

const (
	// RetryMessage는 사용자 저장 실패 시의 안내 문구다.
	RetryMessage = "사용자 정보를 저장할 수 없습니다. 다시 시도해주세요."
	// ApologyMessage는 처리 중 예기치 못한 실패 시의 안내 문구다.
	ApologyMessage = "운세 생성 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	// CachedNotice는 캐시된 운세에 덧붙는 안내 문구다.
	CachedNotice = "\n\n📌 이전에 조회한 운세입니다."
)

// Service는 운세 요청 파이프라인을 구성한다.
type Service struct {
	users         domain.UserRepo
	conversations domain.ConversationRepo
	cache         domain.FortuneCache
	generator     domain.FortuneGenerator
	clock         domain.Clock
	log           zerolog.Logger
}

// NewService는 운세 서비스를 생성한다.
func NewService(users domain.UserRepo, conversations domain.ConversationRepo, cache domain.FortuneCache, generator domain.FortuneGenerator, clock domain.Clock, logger zerolog.Logger) *Service {
	return &Service{users: users, conversations: conversations, cache: cache, generator: generator, clock: clock, log: logger}
}

// ProcessRequest는 요청 하나를 순차 파이프라인으로 처리하고 항상 사용 가능한
// 응답 텍스트를 반환한다. 사용자 저장 실패만 요청을 중단시키고, 대화 기록과
// 캐시 쓰기 실패는 기록만 남기고 계속 진행한다.
func (s *Service) ProcessRequest(ctx context.Context, kakaoUserKey, message, birthDate, birthTime string) (responseText string) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().Interface("panic", rec).Str("kakao_user", kakaoUserKey).Msg("운세 처리 중 패닉")
			responseText = ApologyMessage
		}
	}()

	user, err := s.users.UpsertByKakaoKey(ctx, kakaoUserKey, birthDate, birthTime)
	if err != nil {
		s.log.Error().Err(err).Str("kakao_user", kakaoUserKey).Msg("사용자 저장 실패")
		return RetryMessage
	}

	horizon := DetectHorizon(message)
	metrics.FortuneRequestsTotal.WithLabelValues(string(horizon)).Inc()

	cached, hit, err := s.cache.Get(ctx, user.ID, horizon)
	if err != nil {
		// 캐시 실패는 미스로 취급한다.
		s.log.Warn().Err(err).Str("horizon", string(horizon)).Msg("캐시 조회 실패")
		hit = false
	}

	var content string
	if hit {
		metrics.FortuneCacheHits.WithLabelValues(string(horizon)).Inc()
		content = cached + CachedNotice
	} else {
		metrics.FortuneCacheMisses.WithLabelValues(string(horizon)).Inc()
		summary := s.birthSummary(ctx, birthDate, birthTime)
		generated := s.generator.Generate(ctx, birthDate, birthTime, horizon)
		content = summary + "\n\n" + generated
		if err := s.cache.Put(ctx, user.ID, horizon, content); err != nil {
			s.log.Warn().Err(err).Str("horizon", string(horizon)).Msg("캐시 저장 실패")
		}
	}

	if err := s.conversations.SaveConversation(ctx, user.ID, message, content, horizon); err != nil {
		s.log.Warn().Err(err).Str("kakao_user", kakaoUserKey).Msg("대화 기록 저장 실패")
	}

	return content
}

// birthSummary는 띠/별자리/나이가 담긴 생년월일 요약 줄을 만든다.
func (s *Service) birthSummary(ctx context.Context, birthDate, birthTime string) string {
	year, month, day, ok := splitBirthDate(birthDate)
	if !ok {
		return "📅 " + birthDate + "생"
	}

	now := s.clock.Now(ctx)
	info := fmt.Sprintf("📅 %d년 %d월 %d일생", year, month, day)
	if birthTime != "" {
		info += " " + birthTime + "시"
	}
	info += fmt.Sprintf("\n🐾 %s | ⭐ %s | 🎂 한국나이 %d세(만 %d세)",
		calendar.ZodiacAnimal(year),
		calendar.ZodiacSign(month, day),
		calendar.KoreanAge(year, now.Year()),
		calendar.InternationalAge(year, month, day, now))
	return info
}

// splitBirthDate는 YYYY-MM-DD 문자열을 분해한다. 달력상 존재하지 않는 날짜도
// 정규화 규칙상 통과할 수 있으므로 time.Parse를 쓰지 않는다.
func splitBirthDate(date string) (year, month, day int, ok bool) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var err error
	if year, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if month, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if day, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, false
	}
	return year, month, day, true
}
