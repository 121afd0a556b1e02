// Package calendar는 생년월일에서 띠, 별자리, 나이를 구하는 순수 함수 모음이다.
package calendar

import (
	"fmt"
	"time"
)

// 연도%12==0이 원숭이가 되도록 고정된 회전 순서. 천문학적 주기 검증이 아니라
// 이 테이블 자체가 계약이다.
var animals = [12]string{
	"원숭이", "닭", "개", "돼지",
	"쥐", "소", "호랑이", "토끼",
	"용", "뱀", "말", "양",
}

// ZodiacAnimal은 출생 연도의 띠를 반환한다.
func ZodiacAnimal(birthYear int) string {
	return animals[birthYear%12] + "띠"
}

type signWindow struct {
	name       string
	startMonth int
	startDay   int
	endMonth   int
	endDay     int
}

var signs = []signWindow{
	{"염소자리", 12, 22, 1, 19},
	{"물병자리", 1, 20, 2, 18},
	{"물고기자리", 2, 19, 3, 20},
	{"양자리", 3, 21, 4, 19},
	{"황소자리", 4, 20, 5, 20},
	{"쌍둥이자리", 5, 21, 6, 20},
	{"게자리", 6, 21, 7, 22},
	{"사자자리", 7, 23, 8, 22},
	{"처녀자리", 8, 23, 9, 22},
	{"천칭자리", 9, 23, 10, 22},
	{"전갈자리", 10, 23, 11, 21},
	{"사수자리", 11, 22, 12, 21},
}

// ZodiacSign은 생월/생일의 별자리를 반환한다. 염소자리는 연말연초를 걸친다.
func ZodiacSign(birthMonth, birthDay int) string {
	for _, s := range signs {
		if s.startMonth == 12 {
			if (birthMonth == 12 && birthDay >= s.startDay) ||
				(birthMonth == 1 && birthDay <= s.endDay) {
				return s.name
			}
			continue
		}
		if (birthMonth == s.startMonth && birthDay >= s.startDay) ||
			(birthMonth == s.endMonth && birthDay <= s.endDay) ||
			(birthMonth > s.startMonth && birthMonth < s.endMonth) {
			return s.name
		}
	}
	return "알 수 없음"
}

// KoreanAge는 한국 나이를 계산한다: 현재 연도 - 출생 연도 + 1.
func KoreanAge(birthYear, currentYear int) int {
	return currentYear - birthYear + 1
}

// InternationalAge는 만 나이를 계산한다.
func InternationalAge(birthYear, birthMonth, birthDay int, now time.Time) int {
	age := now.Year() - birthYear
	monthDiff := int(now.Month()) - birthMonth
	if monthDiff < 0 || (monthDiff == 0 && now.Day() < birthDay) {
		age--
	}
	return age
}

// LunarDate는 음력 변환 자리표시자다. 실제 변환은 구현되어 있지 않으며
// 양력 날짜를 그대로 표기해 반환한다.
func LunarDate(solar time.Time) string {
	return fmt.Sprintf("양력 %d년 %d월 %d일", solar.Year(), int(solar.Month()), solar.Day())
}
