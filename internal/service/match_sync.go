package service

import (
	"context"
	"fmt"

	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"
	"MatchSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// MatchSyncService 比赛对账单元：补齐一场比赛及其依赖的两名教练。
// 幂等：会话缓存或库中已有该比赛时直接跳过；失败时不产生部分入库
// （比分/教练缺失在拉详情阶段即被拒绝，比赛行在两名教练都入库后才写）
type MatchSyncService struct {
	matchRepo repository.MatchRepository
	coachSync *CoachSyncService
	extractor interfaces.SourceExtractor
	logger    *logrus.Logger
}

func NewMatchSyncService(
	matchRepo repository.MatchRepository,
	coachSync *CoachSyncService,
	extractor interfaces.SourceExtractor,
	logger *logrus.Logger,
) *MatchSyncService {
	return &MatchSyncService{
		matchRepo: matchRepo,
		coachSync: coachSync,
		extractor: extractor,
		logger:    logger,
	}
}

// Reconcile 补齐一场比赛（本次运行至多执行一次，跨运行幂等）
func (s *MatchSyncService) Reconcile(ctx context.Context, sctx *SyncContext, matchID int64, leagueID int64, seasonID int) error {
	if _, ok := sctx.MatchCache[matchID]; ok {
		s.logger.Debugf("比赛%d本次运行已处理，跳过", matchID)
		return nil
	}
	exists, err := s.matchRepo.Exists(ctx, matchID)
	if err != nil {
		return fmt.Errorf("查询比赛%d是否入库失败: %w", matchID, err)
	}
	if exists {
		sctx.MatchCache[matchID] = struct{}{}
		s.logger.Debugf("比赛%d已在库中，跳过", matchID)
		return nil
	}

	// 比分或教练缺失在此处以显式失败上抛（ErrMissingResult/ErrMissingCoach）
	detail, err := s.extractor.FetchMatchDetail(ctx, matchID)
	if err != nil {
		return err
	}

	// 两名教练各自独立补齐，一方失败不阻断另一方；
	// 但比赛表教练列非空，任一方失败则本场整体失败、比赛不写
	errHome := s.coachSync.Reconcile(ctx, sctx, *detail.HomeCoachID)
	errAway := s.coachSync.Reconcile(ctx, sctx, *detail.AwayCoachID)
	if errHome != nil {
		return fmt.Errorf("比赛%d主队教练处理失败: %w", matchID, errHome)
	}
	if errAway != nil {
		return fmt.Errorf("比赛%d客队教练处理失败: %w", matchID, errAway)
	}

	homePoints, awayPoints := model.PointsFromScore(*detail.HomeScore, *detail.AwayScore)
	match := &model.Match{
		TMMatchID:   detail.TMMatchID,
		SeasonID:    seasonID,
		LeagueID:    leagueID,
		Date:        detail.Date,
		HomeClubID:  detail.HomeClubID,
		AwayClubID:  detail.AwayClubID,
		HomeCoachID: *detail.HomeCoachID,
		AwayCoachID: *detail.AwayCoachID,
		Attendance:  detail.Attendance,
		HomeScore:   *detail.HomeScore,
		AwayScore:   *detail.AwayScore,
		HomePoints:  homePoints,
		AwayPoints:  awayPoints,
	}
	if err := s.matchRepo.Upsert(ctx, match); err != nil {
		return fmt.Errorf("比赛%d入库失败: %w", matchID, err)
	}

	sctx.MatchCache[matchID] = struct{}{}
	s.logger.Infof("比赛%d入库完成（%d:%d，积分%d/%d）", matchID, match.HomeScore, match.AwayScore, homePoints, awayPoints)
	return nil
}
