package kakao

import (
	"regexp"
	"strconv"
	"time"
)

// ParsedBirth는 자유 입력에서 추출한 생년월일/생시다. Valid가 false이면
// ErrorMessage에 사용자에게 보여줄 교정 안내가 담긴다.
type ParsedBirth struct {
	BirthDate    string
	BirthTime    string
	Valid        bool
	ErrorMessage string
}

var (
	// "1990-01-01", "1990/01/01", "1990년1월1일", "19900101" 모두 허용한다.
	dateInputRe = regexp.MustCompile(`(\d{4})[-/년]?(\d{1,2})[-/월]?(\d{1,2})`)
	// "14:30", "14시30분" 형태.
	timeInputRe = regexp.MustCompile(`(\d{1,2})[시:](\d{2})`)

	normalizedDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	normalizedTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

// ParseBirthInput은 발화에서 생년월일과 생시를 추출해 정규화한다.
// 어떤 입력에도 에러 대신 교정 안내가 담긴 invalid 결과를 반환한다.
func ParseBirthInput(utterance string, now time.Time) ParsedBirth {
	var birthDate, birthTime string

	if m := dateInputRe.FindStringSubmatch(utterance); m != nil {
		birthDate = m[1] + "-" + pad2(m[2]) + "-" + pad2(m[3])
	}
	if m := timeInputRe.FindStringSubmatch(utterance); m != nil {
		birthTime = pad2(m[1]) + ":" + m[2]
	}

	if birthDate == "" {
		return ParsedBirth{
			Valid:        false,
			ErrorMessage: "생년월일을 입력해주세요.\n예시: 1990-01-01 또는 19900101",
		}
	}
	if !isValidBirthDate(birthDate, now) {
		return ParsedBirth{
			Valid:        false,
			ErrorMessage: "올바른 생년월일 형식이 아닙니다.\n예시: 1990-01-01",
		}
	}
	if birthTime != "" && !normalizedTimeRe.MatchString(birthTime) {
		return ParsedBirth{
			Valid:        false,
			ErrorMessage: "올바른 생시 형식이 아닙니다.\n예시: 14:30",
		}
	}

	return ParsedBirth{BirthDate: birthDate, BirthTime: birthTime, Valid: true}
}

// isValidBirthDate는 정규화된 날짜를 검증한다. 달력상 실재 여부까지는
// 확인하지 않는다 (예: 02-30도 통과한다).
func isValidBirthDate(date string, now time.Time) bool {
	if !normalizedDateRe.MatchString(date) {
		return false
	}
	year, _ := strconv.Atoi(date[0:4])
	month, _ := strconv.Atoi(date[5:7])
	day, _ := strconv.Atoi(date[8:10])
	if year < 1900 || year > now.Year() {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > 31 {
		return false
	}
	return true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
