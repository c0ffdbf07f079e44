package repository

import (
	"context"
	"errors"

	"MatchSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateRepository 联赛赛季同步进度仓储（每个联赛+赛季一条可变记录）
type StateRepository interface {
	// Get 查询进度记录；不存在返回(nil, nil)
	Get(ctx context.Context, leagueID int64, seasonID int) (*model.LeagueSeasonState, error)
	// Save 覆盖写进度记录（league_id+season_id冲突时整行更新）
	Save(ctx context.Context, s *model.LeagueSeasonState) error
	// Delete 删除进度记录（全量重跑前清理）
	Delete(ctx context.Context, leagueID int64, seasonID int) error
}

type stateRepository struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) StateRepository {
	return &stateRepository{db: db}
}

func (r *stateRepository) Get(ctx context.Context, leagueID int64, seasonID int) (*model.LeagueSeasonState, error) {
	var s model.LeagueSeasonState
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND season_id = ?", leagueID, seasonID).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stateRepository) Save(ctx context.Context, s *model.LeagueSeasonState) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "league_id"}, {Name: "season_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"last_processed_match_id", "last_processed_match_date",
			"total_matches_processed", "failed_match_ids", "status", "last_updated_at",
		}),
	}).Create(s).Error
}

func (r *stateRepository) Delete(ctx context.Context, leagueID int64, seasonID int) error {
	return r.db.WithContext(ctx).
		Where("league_id = ? AND season_id = ?", leagueID, seasonID).
		Delete(&model.LeagueSeasonState{}).Error
}
