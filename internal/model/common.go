package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// 同步状态枚举（league_season_state.status）
const (
	StatusInProgress          = "in_progress"
	StatusCompleted           = "completed"
	StatusCompletedWithErrors = "completed_with_errors"
	// StatusError 预留给处理前的灾难性中止；控制器目前选择不写状态，仅保留常量
	StatusError = "error"
)

// PointsFromScore 由比分推导双方积分：胜3分、平各1分、负0分
func PointsFromScore(homeScore, awayScore int) (homePoints, awayPoints int) {
	switch {
	case homeScore > awayScore:
		return 3, 0
	case homeScore < awayScore:
		return 0, 3
	default:
		return 1, 1
	}
}

// MarshalFailedIDs 失败比赛ID列表序列化为JSONB列值（空列表入库为[]而非null）
func MarshalFailedIDs(ids []int64) datatypes.JSON {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return b
}

// UnmarshalFailedIDs JSONB列值反序列化；解析失败按空列表兜底
func UnmarshalFailedIDs(raw datatypes.JSON) []int64 {
	if len(raw) == 0 {
		return []int64{}
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return []int64{}
	}
	return ids
}

// DateOnly 截断到当天零点（比赛日期按天比较）
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
