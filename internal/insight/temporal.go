package insight

import (
	"math"
	"time"

	"github.com/afumu/chatwrapped/internal/model"
)

// nightOwlHours / earlyBirdHours 作息打分的小时段。
// 夜猫: [22,2), 早鸟: [5,8)。
var (
	nightOwlHours  = map[int]bool{22: true, 23: true, 0: true, 1: true}
	earlyBirdHours = map[int]bool{5: true, 6: true, 7: true}
)

// AnalyzeTemporal 对全部消息做一次全局时间节律分析。
// 零消息时返回全零直方图和默认得分, 没有失败路径。
func AnalyzeTemporal(messages []model.MessageRecord) model.TemporalFingerprint {
	fp := model.TemporalFingerprint{WeekendVsWeekdayRatio: 1.0}
	if len(messages) == 0 {
		return fp
	}

	total := len(messages)
	workCount := 0
	weekendCount := 0
	weekdayCount := 0
	nightCount := 0
	earlyCount := 0

	for _, msg := range messages {
		hour := msg.Timestamp.Hour()
		fp.HourlyActivity[hour]++
		fp.WeekdayActivity[isoWeekday(msg.Timestamp.Weekday())-1]++

		if hour >= WorkHourStart && hour <= WorkHourEnd {
			workCount++
		}
		if wd := msg.Timestamp.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekendCount++
		} else {
			weekdayCount++
		}
		if nightOwlHours[hour] {
			nightCount++
		}
		if earlyBirdHours[hour] {
			earlyCount++
		}
	}

	fp.InferredSleepStart, fp.InferredSleepEnd = inferSleepWindow(fp.HourlyActivity)
	fp.WorkHoursPercent = float64(workCount) / float64(total)

	// 周末只占一周的 2/7, 乘 5/2 归一后与工作日可比。
	if weekdayCount > 0 {
		fp.WeekendVsWeekdayRatio = float64(weekendCount) / float64(weekdayCount) * 2.5
	}

	fp.NightOwlScore = clamp(float64(nightCount)/float64(total)*ChronotypeMultiplier, 0, 1)
	fp.EarlyBirdScore = clamp(float64(earlyCount)/float64(total)*ChronotypeMultiplier, 0, 1)

	return fp
}

// inferSleepWindow 扫描全部 24 个起点, 取 6 小时消息总数最小的窗口。
// 平局取更早的起点, 保证确定性。
func inferSleepWindow(hourly [24]int) (start, end int) {
	bestStart := 0
	bestSum := math.MaxInt
	for offset := 0; offset < 24; offset++ {
		sum := 0
		for i := 0; i < SleepWindowHours; i++ {
			sum += hourly[(offset+i)%24]
		}
		if sum < bestSum {
			bestSum = sum
			bestStart = offset
		}
	}
	return bestStart, (bestStart + SleepWindowHours) % 24
}

// isoWeekday 把 Go 的 Weekday (周日=0) 转成 1-7 (周一=1, 周日=7),
// 与直方图及 PeakDayOfWeek 的约定一致。
func isoWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}
