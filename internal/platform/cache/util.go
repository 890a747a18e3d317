package cache

import (
	"time"
)

// refreshHour はSECがティッカー一覧を更新し終える目安の時刻（米国東部時間）です。
const refreshHour = 6

// timeUntilNextRefresh はnowから次の午前6時（米国東部時間）までの期間を返します。
func timeUntilNextRefresh(now time.Time) time.Duration {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// tzdataがない環境ではUTCで代用する
		loc = time.UTC
	}
	now = now.In(loc)

	next := time.Date(now.Year(), now.Month(), now.Day(), refreshHour, 0, 0, 0, loc)

	// 今日の更新時刻が既に過ぎている場合は翌日を使用
	if !now.Before(next) {
		next = next.AddDate(0, 0, 1)
	}

	return next.Sub(now)
}
