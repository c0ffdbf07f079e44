package service

import (
	"context"
	"fmt"

	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"
	"MatchSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// CoachSyncService 教练对账单元：补齐一名教练的履历与全部任期历史。
// 履历无论是否已入库都整行覆盖（上游可能修正过数据）；
// 任期按自然键幂等写入，引用了未入库俱乐部的任期跳过不写（保引用完整性）
type CoachSyncService struct {
	coachRepo  repository.CoachRepository
	tenureRepo repository.TenureRepository
	extractor  interfaces.SourceExtractor
	logger     *logrus.Logger
}

func NewCoachSyncService(
	coachRepo repository.CoachRepository,
	tenureRepo repository.TenureRepository,
	extractor interfaces.SourceExtractor,
	logger *logrus.Logger,
) *CoachSyncService {
	return &CoachSyncService{
		coachRepo:  coachRepo,
		tenureRepo: tenureRepo,
		extractor:  extractor,
		logger:     logger,
	}
}

// Reconcile 补齐一名教练；本次运行已处理过则直接跳过
func (s *CoachSyncService) Reconcile(ctx context.Context, sctx *SyncContext, coachID int64) error {
	if _, ok := sctx.CoachCache[coachID]; ok {
		s.logger.Debugf("教练%d本次运行已处理，跳过", coachID)
		return nil
	}

	// 是否已入库仅影响日志措辞，不改变覆盖写行为
	exists, err := s.coachRepo.Exists(ctx, coachID)
	if err != nil {
		s.logger.WithError(err).Warnf("查询教练%d是否入库失败，按未入库处理", coachID)
		exists = false
	}

	detail, err := s.extractor.FetchCoachDetail(ctx, coachID)
	if err != nil {
		return fmt.Errorf("拉取教练%d详情失败: %w", coachID, err)
	}

	coach := &model.Coach{
		TMCoachID:       detail.TMCoachID,
		Name:            detail.Name,
		DOB:             detail.DOB,
		Country:         detail.Country,
		CoachingLicense: detail.CoachingLicense,
	}
	if err := s.coachRepo.Upsert(ctx, coach); err != nil {
		return fmt.Errorf("教练%d履历入库失败: %w", coachID, err)
	}

	saved, skipped := 0, 0
	for _, raw := range detail.Tenures {
		clubOK, err := s.tenureRepo.ClubExists(ctx, raw.ClubID)
		if err != nil {
			return fmt.Errorf("检查俱乐部%d是否入库失败: %w", raw.ClubID, err)
		}
		if !clubOK {
			// 引用完整性保护：俱乐部未入库的任期只记日志不入库，不算教练处理失败
			s.logger.Warnf("俱乐部%d未入库，跳过教练%d的该条任期", raw.ClubID, coachID)
			skipped++
			continue
		}

		tenure := &model.CoachTenure{
			CoachID:   coachID,
			ClubID:    raw.ClubID,
			StartDate: raw.StartDate,
			EndDate:   raw.EndDate,
			Role:      raw.Role,
			IsCurrent: raw.EndDate == nil,
		}
		if err := s.tenureRepo.Upsert(ctx, tenure); err != nil {
			return fmt.Errorf("教练%d任期入库失败: %w", coachID, err)
		}
		saved++
	}

	sctx.CoachCache[coachID] = struct{}{}

	action := "新增"
	if exists {
		action = "更新"
	}
	s.logger.Infof("%s教练%s（%d），任期入库%d条，跳过%d条", action, detail.Name, coachID, saved, skipped)
	return nil
}
