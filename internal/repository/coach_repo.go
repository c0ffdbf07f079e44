package repository

import (
	"context"
	"errors"
	"time"

	"MatchSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CoachRepository 教练仓储
type CoachRepository interface {
	// Exists 按数据源教练ID查询是否已入库
	Exists(ctx context.Context, tmCoachID int64) (bool, error)
	// Upsert 入库教练履历；tm_coach_id冲突时整行覆盖（上游可能修正过履历数据）
	Upsert(ctx context.Context, c *model.Coach) error
	// FindCoachAtDate 找出目标日期在指定俱乐部执教的教练ID；
	// 任期重叠时返回开始日期最近的并置ambiguous=true，无命中返回ErrNoTenureAtDate
	FindCoachAtDate(ctx context.Context, clubID int64, date time.Time) (coachID int64, ambiguous bool, err error)
}

// ErrNoTenureAtDate 目标日期没有任何任期覆盖该俱乐部
var ErrNoTenureAtDate = errors.New("目标日期无教练任期记录")

type coachRepository struct {
	db *gorm.DB
}

func NewCoachRepository(db *gorm.DB) CoachRepository {
	return &coachRepository{db: db}
}

func (r *coachRepository) Exists(ctx context.Context, tmCoachID int64) (bool, error) {
	var c model.Coach
	err := r.db.WithContext(ctx).Select("id").Where("tm_coach_id = ?", tmCoachID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *coachRepository) Upsert(ctx context.Context, c *model.Coach) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tm_coach_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "dob", "country", "coaching_license", "updated_at"}),
	}).Create(c).Error
}

func (r *coachRepository) FindCoachAtDate(ctx context.Context, clubID int64, date time.Time) (int64, bool, error) {
	var tenures []model.CoachTenure
	if err := r.db.WithContext(ctx).
		Where("club_id = ? AND start_date <= ?", clubID, date).
		Where("end_date IS NULL OR end_date >= ?", date).
		Find(&tenures).Error; err != nil {
		return 0, false, err
	}

	resolved, ambiguous := model.ResolveTenureAt(tenures, date)
	if resolved == nil {
		return 0, false, ErrNoTenureAtDate
	}
	return resolved.CoachID, ambiguous, nil
}
