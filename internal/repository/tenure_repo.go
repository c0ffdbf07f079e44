package repository

import (
	"context"
	"errors"

	"MatchSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TenureRepository 教练任期仓储
type TenureRepository interface {
	// ClubExists 俱乐部是否已入库（任期写入前的引用完整性检查）
	ClubExists(ctx context.Context, tmClubID int64) (bool, error)
	// Upsert 入库一条任期；自然键（coach_id+club_id+start_date）冲突时不做任何修改
	Upsert(ctx context.Context, t *model.CoachTenure) error
}

type tenureRepository struct {
	db *gorm.DB
}

func NewTenureRepository(db *gorm.DB) TenureRepository {
	return &tenureRepository{db: db}
}

func (r *tenureRepository) ClubExists(ctx context.Context, tmClubID int64) (bool, error) {
	var c model.Club
	err := r.db.WithContext(ctx).Select("id").Where("tm_club_id = ?", tmClubID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *tenureRepository) Upsert(ctx context.Context, t *model.CoachTenure) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "coach_id"}, {Name: "club_id"}, {Name: "start_date"}},
		DoNothing: true,
	}).Create(t).Error
}
