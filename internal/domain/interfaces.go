package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrUserNotFound는 저장된 사용자가 없을 때 반환된다.
var ErrUserNotFound = errors.New("사용자를 찾을 수 없습니다")

// UserRepo는 사용자를 관리한다.
type UserRepo interface {
	// UpsertByKakaoKey는 사용자를 조회/생성하고, 저장된 생년월일과 다르면 갱신한다.
	UpsertByKakaoKey(ctx context.Context, kakaoUserKey, birthDate, birthTime string) (User, error)
	GetByKakaoKey(ctx context.Context, kakaoUserKey string) (User, error)
}

// ConversationRepo는 대화 기록을 저장한다. 요청 경로에서는 쓰기 전용이다.
type ConversationRepo interface {
	SaveConversation(ctx context.Context, userID uuid.UUID, message, response string, horizon Horizon) error
	ListRecentConversations(ctx context.Context, userID uuid.UUID, limit int) ([]Conversation, error)
}

// FortuneCache는 (사용자, 운세 타입) 키의 운세 텍스트 캐시다.
// Get은 만료된 항목을 읽는 시점에 지연 삭제하고 미스로 처리한다.
// Put은 기존 항목을 삭제한 뒤 새로 삽입한다.
type FortuneCache interface {
	Get(ctx context.Context, userID uuid.UUID, horizon Horizon) (string, bool, error)
	Put(ctx context.Context, userID uuid.UUID, horizon Horizon, content string) error
}

// FortuneGenerator는 운세 텍스트를 생성한다. 실패 시에도 항상 사용 가능한
// 텍스트를 반환하며 에러를 전파하지 않는다.
type FortuneGenerator interface {
	Generate(ctx context.Context, birthDate, birthTime string, horizon Horizon) string
}

// Clock은 현재 한국 시간을 제공한다.
type Clock interface {
	Now(ctx context.Context) time.Time
}
