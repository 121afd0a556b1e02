package fortune

import (
	"strings"

	"kakao-fortune-bot/internal/domain"
)

// 키워드 그룹은 우선순위 순서로 평가된다. 겹치는 키워드는 먼저 맞은 쪽이 이긴다.
var (
	dailyKeywords    = []string{"오늘", "일일", "데일리"}
	monthlyKeywords  = []string{"이번달", "월간", "이번 달"}
	yearlyKeywords   = []string{"올해", "연간", "년간"}
	lifetimeKeywords = []string{"평생", "인생", "사주"}
)

// DetectHorizon은 메시지의 키워드로 운세 타입을 판별한다. 기본값은 오늘의 운세.
func DetectHorizon(message string) domain.Horizon {
	switch {
	case containsAny(message, dailyKeywords):
		return domain.HorizonDaily
	case containsAny(message, monthlyKeywords):
		return domain.HorizonMonthly
	case containsAny(message, yearlyKeywords):
		return domain.HorizonYearly
	case containsAny(message, lifetimeKeywords):
		return domain.HorizonLifetime
	}
	return domain.HorizonDaily
}

func containsAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}
