package kakao

import "kakao-fortune-bot/internal/domain"

type baseReply struct {
	reply   QuickReply
	horizon domain.Horizon
}

var baseReplies = []baseReply{
	{QuickReply{MessageText: "오늘의 운세", Action: "message", Label: "오늘 운세"}, domain.HorizonDaily},
	{QuickReply{MessageText: "이번 달 운세", Action: "message", Label: "월간 운세"}, domain.HorizonMonthly},
	{QuickReply{MessageText: "올해 운세", Action: "message", Label: "연간 운세"}, domain.HorizonYearly},
}

// QuickRepliesFor는 방금 조회한 운세 타입을 제외한 제안 목록을 만든다.
// 평생 사주에는 대응하는 제안 슬롯이 없어 세 가지가 모두 제안된다.
func QuickRepliesFor(served domain.Horizon) []QuickReply {
	out := make([]QuickReply, 0, len(baseReplies))
	for _, b := range baseReplies {
		if b.horizon == served {
			continue
		}
		out = append(out, b.reply)
	}
	return out
}
