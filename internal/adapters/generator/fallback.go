package generator

import "kakao-fortune-bot/internal/domain"

// FallbackNotice는 대체 운세에 덧붙는 안내 문구다.
const FallbackNotice = "\n\n⚠️ 일시적인 연결 문제로 간단한 운세를 제공했습니다."

var fallbacks = map[domain.Horizon]string{
	domain.HorizonDaily: `🔮 오늘의 운세

오늘은 새로운 시작을 위한 좋은 날입니다.
긍정적인 마음가짐으로 하루를 시작하세요.

• 행운의 숫자: 3, 7
• 행운의 색상: 파란색
• 조언: 주변 사람들과의 소통을 늘려보세요.`,

	domain.HorizonMonthly: `📅 이번 달 운세

이번 달은 도약의 시기입니다.
그동안 준비해온 일들이 결실을 맺을 수 있습니다.

• 중요 시기: 중순
• 집중 분야: 인간관계
• 조언: 꾸준함이 성공의 열쇠입니다.`,

	domain.HorizonYearly: `🎊 올해 운세

올해는 변화와 성장의 해입니다.
새로운 도전을 두려워하지 마세요.

• 상반기: 준비와 계획
• 하반기: 실행과 성과
• 조언: 건강 관리에 신경 쓰세요.`,

	domain.HorizonLifetime: `🌟 평생 운세

당신은 타고난 리더십과 창의성을 가지고 있습니다.
인생의 중요한 전환점에서 올바른 선택을 하게 될 것입니다.

• 강점: 직관력과 판단력
• 적합 분야: 창의적인 일
• 조언: 자신을 믿고 나아가세요.`,
}

// Fallback은 운세 타입별 고정 대체 텍스트를 안내 문구와 함께 반환한다.
func Fallback(horizon domain.Horizon) string {
	text, ok := fallbacks[horizon]
	if !ok {
		text = fallbacks[domain.HorizonDaily]
	}
	return text + FallbackNotice
}
