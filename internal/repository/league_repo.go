package repository

import (
	"context"
	"errors"

	"MatchSync/internal/model"

	"gorm.io/gorm"
)

// LeagueRepository 联赛仓储（静态基础数据，由外部维护）
type LeagueRepository interface {
	// ListEnabled 列出启用同步的全部联赛
	ListEnabled(ctx context.Context) ([]*model.League, error)
	// GetByCode 按数据源联赛代码查询；不存在返回(nil, nil)
	GetByCode(ctx context.Context, tmCode string) (*model.League, error)
}

type leagueRepository struct {
	db *gorm.DB
}

func NewLeagueRepository(db *gorm.DB) LeagueRepository {
	return &leagueRepository{db: db}
}

func (r *leagueRepository) ListEnabled(ctx context.Context) ([]*model.League, error) {
	var leagues []*model.League
	if err := r.db.WithContext(ctx).
		Where("is_enabled = ?", true).
		Order("tm_code ASC").
		Find(&leagues).Error; err != nil {
		return nil, err
	}
	return leagues, nil
}

func (r *leagueRepository) GetByCode(ctx context.Context, tmCode string) (*model.League, error) {
	var l model.League
	err := r.db.WithContext(ctx).Where("tm_code = ?", tmCode).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
