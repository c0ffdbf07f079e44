package model

import "time"

// SeasonMatch 赛季快照中的单场比赛（联赛赛程页可见的全部字段）
type SeasonMatch struct {
	TMMatchID  int64      // 数据源比赛ID
	Date       *time.Time // 比赛日期（快照中可能缺失）
	HomeClubID int64      // 主队俱乐部ID
	AwayClubID int64      // 客队俱乐部ID
	HomeGoals  *int       // 主队进球（未完赛为空）
	AwayGoals  *int       // 客队进球（未完赛为空）
}

// MatchDetail 比赛详情页的完整字段
type MatchDetail struct {
	TMMatchID   int64
	Date        *time.Time
	HomeClubID  int64
	AwayClubID  int64
	HomeCoachID *int64 // 为空表示详情页缺教练信息
	AwayCoachID *int64
	Attendance  *int
	HomeScore   *int // 为空表示无最终比分
	AwayScore   *int
}

// CoachDetail 教练详情（履历+全部任期历史）
type CoachDetail struct {
	TMCoachID       int64
	Name            string
	DOB             *time.Time
	Country         *string
	CoachingLicense *string
	Tenures         []TenureRaw
}

// TenureRaw 教练任期原始记录
type TenureRaw struct {
	ClubID    int64
	StartDate *time.Time
	EndDate   *time.Time // 空=仍在任
	Role      string
}
