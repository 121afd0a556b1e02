package calendar

import (
	"strings"
	"testing"
	"time"
)

func TestZodiacAnimalAnchor(t *testing.T) {
	if got := ZodiacAnimal(2016); got != "원숭이띠" {
		t.Fatalf("2016년은 원숭이띠여야 합니다, 결과: %s", got)
	}
	if got := ZodiacAnimal(1990); got != "말띠" {
		t.Fatalf("1990년은 말띠여야 합니다, 결과: %s", got)
	}
}

func TestZodiacAnimalTwelveYearCycle(t *testing.T) {
	for year := 1900; year < 2026; year++ {
		if ZodiacAnimal(year) != ZodiacAnimal(year+12) {
			t.Fatalf("%d년과 %d년의 띠가 달라서는 안 됩니다", year, year+12)
		}
	}
}

func TestZodiacSignCapricornWrapsYearEnd(t *testing.T) {
	cases := []struct {
		month, day int
		want       string
	}{
		{12, 22, "염소자리"},
		{12, 31, "염소자리"},
		{1, 1, "염소자리"},
		{1, 19, "염소자리"},
		{1, 20, "물병자리"},
		{12, 21, "사수자리"},
		{3, 21, "양자리"},
		{8, 22, "사자자리"},
		{8, 23, "처녀자리"},
	}
	for _, c := range cases {
		if got := ZodiacSign(c.month, c.day); got != c.want {
			t.Fatalf("%d월 %d일: %s을 기대했지만 %s", c.month, c.day, c.want, got)
		}
	}
}

func TestZodiacSignIsTotal(t *testing.T) {
	daysIn := [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	for month := 1; month <= 12; month++ {
		for day := 1; day <= daysIn[month]; day++ {
			if got := ZodiacSign(month, day); got == "알 수 없음" {
				t.Fatalf("%d월 %d일에 별자리가 없습니다", month, day)
			}
		}
	}
}

func TestKoreanAge(t *testing.T) {
	if got := KoreanAge(1990, 2026); got != 37 {
		t.Fatalf("한국나이 37을 기대했지만 %d", got)
	}
}

func TestInternationalAge(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := InternationalAge(1990, 6, 15, now); got != 36 {
		t.Fatalf("생일 당일은 만 36세여야 합니다, 결과: %d", got)
	}
	if got := InternationalAge(1990, 6, 16, now); got != 35 {
		t.Fatalf("생일 전날은 만 35세여야 합니다, 결과: %d", got)
	}
	if got := InternationalAge(1990, 1, 1, now); got != 36 {
		t.Fatalf("생일이 지난 경우 만 36세여야 합니다, 결과: %d", got)
	}
}

func TestLunarDateIsSolarPassthrough(t *testing.T) {
	got := LunarDate(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))
	if !strings.HasPrefix(got, "양력 ") {
		t.Fatalf("음력 변환은 양력 표기를 그대로 반환해야 합니다, 결과: %s", got)
	}
	if got != "양력 1990년 1월 1일" {
		t.Fatalf("예상과 다른 표기: %s", got)
	}
}
