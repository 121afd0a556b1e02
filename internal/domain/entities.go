package domain

import (
	"time"

	"github.com/google/uuid"
)

// Horizon은 운세의 시간 범위를 나타낸다.
type Horizon string

const (
	// HorizonDaily 오늘의 운세.
	HorizonDaily Horizon = "daily"
	// HorizonMonthly 이번 달 운세.
	HorizonMonthly Horizon = "monthly"
	// HorizonYearly 올해 운세.
	HorizonYearly Horizon = "yearly"
	// HorizonLifetime 평생 사주.
	HorizonLifetime Horizon = "lifetime"
)

// TTL은 해당 운세 타입의 캐시 유효 기간을 반환한다.
func (h Horizon) TTL() time.Duration {
	switch h {
	case HorizonMonthly:
		return 7 * 24 * time.Hour
	case HorizonYearly:
		return 30 * 24 * time.Hour
	case HorizonLifetime:
		return 365 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Valid는 알려진 운세 타입인지 확인한다.
func (h Horizon) Valid() bool {
	switch h {
	case HorizonDaily, HorizonMonthly, HorizonYearly, HorizonLifetime:
		return true
	}
	return false
}

// User는 카카오 사용자를 나타낸다. 생년월일은 YYYY-MM-DD, 생시는 HH:MM 문자열.
// 날짜 검증이 달력 기준으로 엄밀하지 않기 때문에 time.Time이 아닌 문자열로 보관한다.
type User struct {
	ID           uuid.UUID
	KakaoUserKey string
	BirthDate    string
	BirthTime    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Conversation은 요청/응답 한 쌍의 불변 기록이다.
type Conversation struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Message     string
	Response    string
	FortuneType Horizon
	CreatedAt   time.Time
}

// CacheEntry는 (사용자, 운세 타입) 키로 저장된 운세 텍스트다.
type CacheEntry struct {
	UserID      uuid.UUID
	FortuneType Horizon
	Content     string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired는 주어진 시각 기준으로 항목이 만료되었는지 판정한다.
// 만료 판정은 저장소 백엔드와 무관하게 이 메서드 하나로 수행한다.
func (e CacheEntry) Expired(now time.Time) bool {
	return e.ExpiresAt.Before(now)
}
