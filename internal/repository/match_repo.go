package repository

import (
	"context"
	"errors"

	"MatchSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchRepository 比赛仓储
type MatchRepository interface {
	// FetchIDsBySeasonLeague 拉取（赛季+联赛）范围内已入库的全部比赛ID（差集计算的本地侧）
	FetchIDsBySeasonLeague(ctx context.Context, seasonID int, leagueID int64) (map[int64]struct{}, error)
	// Exists 按数据源比赛ID查询是否已入库
	Exists(ctx context.Context, tmMatchID int64) (bool, error)
	// Upsert 入库一场比赛；tm_match_id冲突时不做任何修改（比赛入库后不再变更）
	Upsert(ctx context.Context, m *model.Match) error
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) FetchIDsBySeasonLeague(ctx context.Context, seasonID int, leagueID int64) (map[int64]struct{}, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&model.Match{}).
		Where("season_id = ? AND league_id = ?", seasonID, leagueID).
		Pluck("tm_match_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *matchRepository) Exists(ctx context.Context, tmMatchID int64) (bool, error) {
	var m model.Match
	err := r.db.WithContext(ctx).Select("id").Where("tm_match_id = ?", tmMatchID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *matchRepository) Upsert(ctx context.Context, m *model.Match) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tm_match_id"}},
		DoNothing: true,
	}).Create(m).Error
}
