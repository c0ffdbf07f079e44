package interfaces

import (
	"context"
	"errors"

	"MatchSync/internal/model"
)

// 比赛详情的两类显式抓取失败（由控制器按场次粒度收集，不中断赛季循环）
var (
	// ErrMissingResult 详情页无最终比分
	ErrMissingResult = errors.New("比赛缺少最终比分")
	// ErrMissingCoach 详情页教练信息不足两名
	ErrMissingCoach = errors.New("比赛缺少教练信息")
)

// SourceExtractor 数据源抽取接口（核心引擎唯一依赖的外部数据入口）
type SourceExtractor interface {
	// FetchSeasonMatches 拉取一个联赛赛季的完整比赛快照（含日期与比分）
	FetchSeasonMatches(ctx context.Context, leagueCode string, seasonID int) ([]model.SeasonMatch, error)
	// FetchMatchDetail 拉取单场比赛详情；比分缺失返回ErrMissingResult，教练缺失返回ErrMissingCoach
	FetchMatchDetail(ctx context.Context, matchID int64) (*model.MatchDetail, error)
	// FetchCoachDetail 拉取教练履历与全部任期历史
	FetchCoachDetail(ctx context.Context, coachID int64) (*model.CoachDetail, error)
}
