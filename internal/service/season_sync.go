package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"MatchSync/internal/config"
	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"
	"MatchSync/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SeasonSyncService 赛季同步控制器：算差集、排序、应用日期截断，
// 逐场驱动比赛对账单元，收集失败并在运行结束时覆盖写同步进度
type SeasonSyncService struct {
	stateRepo  repository.StateRepository
	matchRepo  repository.MatchRepository
	leagueRepo repository.LeagueRepository
	matchSync  *MatchSyncService
	extractor  interfaces.SourceExtractor
	cfg        *config.SyncConfig
	logger     *logrus.Logger
}

func NewSeasonSyncService(
	stateRepo repository.StateRepository,
	matchRepo repository.MatchRepository,
	leagueRepo repository.LeagueRepository,
	matchSync *MatchSyncService,
	extractor interfaces.SourceExtractor,
	cfg *config.SyncConfig,
	logger *logrus.Logger,
) *SeasonSyncService {
	return &SeasonSyncService{
		stateRepo:  stateRepo,
		matchRepo:  matchRepo,
		leagueRepo: leagueRepo,
		matchSync:  matchSync,
		extractor:  extractor,
		cfg:        cfg,
		logger:     logger,
	}
}

// SyncSeason 同步一个联赛赛季，返回本次运行失败的比赛ID列表。
// 快照或本地ID拉取失败时立即中止且不改动进度记录；
// 单场失败只收集不中断，一条坏数据不阻塞整个赛季
func (s *SeasonSyncService) SyncSeason(ctx context.Context, leagueID int64, leagueCode string, seasonID int) ([]int64, error) {
	log := s.logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"league": leagueCode,
		"season": seasonID,
	})

	// 1. 读取既有进度。处理范围只由差集决定，但累计计数依赖上次的值：
	// 读不到就写会把单调不减的计数覆盖回退，所以读取失败与快照失败同样中止
	prior, err := s.stateRepo.Get(ctx, leagueID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("读取同步进度失败: %w", err)
	}
	if prior != nil {
		log.Infof("上次进度：累计%d场，状态%s，最近更新%s",
			prior.TotalMatchesProcessed, prior.Status, prior.LastUpdatedAt.Format(time.RFC3339))
	}

	// 2. 拉取赛季完整快照；失败即中止本次运行，进度记录保持原样
	snapshot, err := s.extractor.FetchSeasonMatches(ctx, leagueCode, seasonID)
	if err != nil {
		return nil, fmt.Errorf("拉取赛季快照失败: %w", err)
	}

	// 3. 本地已入库的比赛ID
	existing, err := s.matchRepo.FetchIDsBySeasonLeague(ctx, seasonID, leagueID)
	if err != nil {
		return nil, fmt.Errorf("拉取本地比赛ID失败: %w", err)
	}

	// 4. 待处理 = 快照 − 本地。差集是决定剩余工作量的唯一依据：
	// 源可能乱序回填历史场次，按last_processed_match_date做增量会漏数据
	toProcess := make([]model.SeasonMatch, 0, len(snapshot))
	for _, m := range snapshot {
		if _, ok := existing[m.TMMatchID]; !ok {
			toProcess = append(toProcess, m)
		}
	}
	log.Infof("快照%d场，已入库%d场，待处理%d场", len(snapshot), len(existing), len(toProcess))

	// 5. 按日期升序，无日期的场次排最后（照常处理，不视为未来场次）
	sort.SliceStable(toProcess, func(i, j int) bool {
		di, dj := toProcess[i].Date, toProcess[j].Date
		switch {
		case di == nil && dj == nil:
			return toProcess[i].TMMatchID < toProcess[j].TMMatchID
		case di == nil:
			return false
		case dj == nil:
			return true
		case !di.Equal(*dj):
			return di.Before(*dj)
		default:
			return toProcess[i].TMMatchID < toProcess[j].TMMatchID
		}
	})

	// 6/7. 逐场处理；遇到当天或未来日期整体终止循环：
	// 未完赛场次的源数据视为不完整，这是刻意的截断规则而非错误（可配置关闭）
	sctx := NewSyncContext()
	// 统一按UTC日历日比较：抽取器产出的日期是UTC零点，进程本地时区不参与截断判定
	today := model.DateOnly(time.Now().UTC())
	var failed []int64
	processed := 0
	attempted := 0
	lastID := int64(0)
	var lastDate *time.Time

	for _, m := range toProcess {
		if !s.cfg.ProcessTodayAndFuture && m.Date != nil && !model.DateOnly(m.Date.UTC()).Before(today) {
			log.Infof("遇到%s的场次（比赛%d），提前终止本次运行", m.Date.Format("2006-01-02"), m.TMMatchID)
			break
		}

		attempted++
		if err := s.matchSync.Reconcile(ctx, sctx, m.TMMatchID, leagueID, seasonID); err != nil {
			log.WithError(err).Warnf("比赛%d处理失败，继续下一场", m.TMMatchID)
			failed = append(failed, m.TMMatchID)
			continue
		}
		processed++
		lastID = m.TMMatchID
		lastDate = m.Date
	}

	// 8. 本次运行至少尝试过一场才覆盖写进度；累计处理数单调不减，
	// failed_match_ids只反映本次运行（仅供监控，不参与重跑决策）
	if attempted > 0 {
		state := &model.LeagueSeasonState{
			LeagueID:              leagueID,
			SeasonID:              seasonID,
			TotalMatchesProcessed: processed,
			FailedMatchIDs:        model.MarshalFailedIDs(failed),
			Status:                model.StatusCompleted,
			LastUpdatedAt:         time.Now(),
		}
		if len(failed) > 0 {
			state.Status = model.StatusCompletedWithErrors
		}
		if prior != nil {
			state.TotalMatchesProcessed += prior.TotalMatchesProcessed
		}
		if processed > 0 {
			state.LastProcessedMatchID = &lastID
			state.LastProcessedMatchDate = lastDate
		} else if prior != nil {
			// 本次运行无成功场次时沿用上次的"最近处理"信息
			state.LastProcessedMatchID = prior.LastProcessedMatchID
			state.LastProcessedMatchDate = prior.LastProcessedMatchDate
		}
		if err := s.stateRepo.Save(ctx, state); err != nil {
			log.WithError(err).Error("写入同步进度失败")
		}
	}

	log.Infof("本次运行结束：成功%d场，失败%d场", processed, len(failed))
	return failed, nil
}

// SyncAll 依次同步全部启用联赛的指定赛季；单个联赛失败不阻断后续联赛。
// 实际范围 = 库内is_enabled ∩ 配置enabled_leagues（配置为空表示不过滤）
func (s *SeasonSyncService) SyncAll(ctx context.Context, seasonID int) (map[string][]int64, error) {
	leagues, err := s.leagueRepo.ListEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("拉取启用联赛列表失败: %w", err)
	}

	allowed := make(map[string]struct{}, len(s.cfg.EnabledLeagues))
	for _, code := range s.cfg.EnabledLeagues {
		allowed[code] = struct{}{}
	}

	results := make(map[string][]int64, len(leagues))
	for _, l := range leagues {
		if len(allowed) > 0 {
			if _, ok := allowed[l.TMCode]; !ok {
				s.logger.Infof("联赛%s不在配置白名单内，跳过", l.TMCode)
				continue
			}
		}
		failed, err := s.SyncSeason(ctx, l.TMLeagueID, l.TMCode, seasonID)
		if err != nil {
			s.logger.WithError(err).Errorf("联赛%s同步失败，继续下一个", l.TMCode)
			continue
		}
		results[l.TMCode] = failed
	}
	return results, nil
}
