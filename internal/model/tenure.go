package model

import (
	"sort"
	"time"
)

// ResolveTenureAt 在一组任期中定位目标日期所属的任期。
// 区间按 [start_date, end_date] 处理：含开始日、含结束日，end_date 为空视为开放（仍在任）。
// 源数据不保证任期不重叠：多个区间同时覆盖目标日期时返回开始日期最近的一个，
// 并以 ambiguous=true 上报，由调用方决定是否接受该决定性平局裁决。
func ResolveTenureAt(tenures []CoachTenure, date time.Time) (resolved *CoachTenure, ambiguous bool) {
	day := DateOnly(date)

	var hits []*CoachTenure
	for i := range tenures {
		t := &tenures[i]
		// 开始日期缺失的任期无法参与日期判定，跳过
		if t.StartDate == nil {
			continue
		}
		if day.Before(DateOnly(*t.StartDate)) {
			continue
		}
		if t.EndDate != nil && day.After(DateOnly(*t.EndDate)) {
			continue
		}
		hits = append(hits, t)
	}

	if len(hits) == 0 {
		return nil, false
	}

	// 平局裁决：取开始日期最近的任期
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].StartDate.After(*hits[j].StartDate)
	})
	return hits[0], len(hits) > 1
}
