package api

import (
	"context"

	"MatchSync/internal/model"
	"MatchSync/internal/repository"
)

// findLeague 按数据源联赛代码查询；未命中时把code当football-data代码
// （如E0/SP1）翻译成数据源代码再查一次，两种叫法的调用方都能用
func findLeague(ctx context.Context, repo repository.LeagueRepository, code string) (*model.League, error) {
	league, err := repo.GetByCode(ctx, code)
	if err != nil || league != nil {
		return league, err
	}
	if info, ok := model.GetLeagueInfo(code); ok {
		return repo.GetByCode(ctx, info.TMCode)
	}
	return nil, nil
}
