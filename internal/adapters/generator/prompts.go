package generator

import (
	"fmt"
	"time"

	"kakao-fortune-bot/internal/domain"
)

var koreanWeekdays = [7]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

// koreanLongDate는 날짜를 "2026년 8월 28일 금요일" 형태로 표기한다.
func koreanLongDate(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일 %s", t.Year(), int(t.Month()), t.Day(), koreanWeekdays[t.Weekday()])
}

// buildPrompt는 운세 타입별 사용자 프롬프트를 만든다.
func buildPrompt(birthDate, birthTime string, horizon domain.Horizon, today string) string {
	birthInfo := "생년월일: " + birthDate
	if birthTime != "" {
		birthInfo += ", 생시: " + birthTime
	}

	switch horizon {
	case domain.HorizonMonthly:
		return birthInfo + `인 사람의 이번 달 운세를 알려주세요.

다음 항목들을 포함해주세요:
1. 📅 이번 달 전체 운세
2. 🌟 중요한 시기와 기회
3. 💡 이번 달 집중해야 할 분야
4. 🎯 목표 달성을 위한 조언
5. 🍀 행운의 날짜

구체적이고 실용적인 조언을 포함해주세요.`
	case domain.HorizonYearly:
		return birthInfo + `인 사람의 올해 연간 운세를 알려주세요.

다음 항목들을 포함해주세요:
1. 🎊 올해의 전반적인 운세
2. 📈 상반기/하반기 운세 흐름
3. 🎯 올해 이룰 수 있는 성과
4. ⚠️ 주의해야 할 시기
5. 🌈 올해의 테마와 조언

장기적인 관점에서 조언해주세요.`
	case domain.HorizonLifetime:
		return birthInfo + `인 사람의 타고난 사주와 평생 운세를 알려주세요.

다음 항목들을 포함해주세요:
1. 🌟 타고난 성격과 기질
2. 💪 강점과 재능
3. 🎯 인생의 방향성
4. 💑 인연과 관계
5. 💼 적합한 직업이나 분야
6. 🍀 인생 조언

깊이 있고 통찰력 있는 분석을 제공해주세요.`
	default:
		return fmt.Sprintf(`%s인 사람의 %s 오늘 운세를 알려주세요.

다음 항목들을 포함해주세요:
1. 🌅 종합운: 오늘의 전반적인 운세
2. 💼 직장/학업운: 업무나 공부 관련 조언
3. 💕 애정운: 연애나 인간관계 조언
4. 💰 금전운: 재물 관련 조언
5. 🍀 행운의 숫자와 색상
6. ⚠️ 주의사항

긍정적이고 희망적인 톤으로 작성해주세요.`, birthInfo, today)
	}
}
