package api

import (
	"net/http"
	"strconv"

	"MatchSync/internal/config"
	"MatchSync/internal/extractor"
	"MatchSync/internal/repository"
	"MatchSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SyncHandler struct {
	seasonSync *service.SeasonSyncService
	matchSync  *service.MatchSyncService
	coachSync  *service.CoachSyncService
	leagueRepo repository.LeagueRepository
	stateRepo  repository.StateRepository
	logger     *logrus.Logger
}

func NewSyncHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *SyncHandler {
	ext := extractor.NewExtractor(&cfg.Source, logger)
	coachRepo := repository.NewCoachRepository(db)
	tenureRepo := repository.NewTenureRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	stateRepo := repository.NewStateRepository(db)
	leagueRepo := repository.NewLeagueRepository(db)

	coachSync := service.NewCoachSyncService(coachRepo, tenureRepo, ext, logger)
	matchSync := service.NewMatchSyncService(matchRepo, coachSync, ext, logger)
	seasonSync := service.NewSeasonSyncService(stateRepo, matchRepo, leagueRepo, matchSync, ext, &cfg.Sync, logger)

	return &SyncHandler{
		seasonSync: seasonSync,
		matchSync:  matchSync,
		coachSync:  coachSync,
		leagueRepo: leagueRepo,
		stateRepo:  stateRepo,
		logger:     logger,
	}
}

// SyncLeagueHandler 同步单个联赛赛季
// @Summary 增量同步指定联赛赛季的比赛与教练数据
// @Param code path string true "联赛代码（数据源代码如GB1，或football-data代码如E0）"
// @Param season query int true "赛季（如2025）"
// @Param full query bool false "true=先清进度记录再全量重跑"
// @Router /sync/league/{code} [post]
func (h *SyncHandler) SyncLeagueHandler(c *gin.Context) {
	code := c.Param("code")
	seasonID, err := strconv.Atoi(c.Query("season"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "season参数缺失或非法"})
		return
	}

	league, err := findLeague(c.Request.Context(), h.leagueRepo, code)
	if err != nil {
		h.logger.Errorf("查询联赛%s失败: %v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if league == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "未知联赛代码: " + code})
		return
	}

	// 全量重跑：先删进度记录（差集本身幂等，删进度只为重置累计计数与状态）
	if c.Query("full") == "true" {
		if err := h.stateRepo.Delete(c.Request.Context(), league.TMLeagueID, seasonID); err != nil {
			h.logger.Errorf("清理%s赛季%d进度失败: %v", code, seasonID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	failed, err := h.seasonSync.SyncSeason(c.Request.Context(), league.TMLeagueID, code, seasonID)
	if err != nil {
		h.logger.Errorf("同步%s赛季%d失败: %v", code, seasonID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if failed == nil {
		failed = []int64{}
	}
	c.JSON(http.StatusOK, gin.H{
		"league":           code,
		"season":           seasonID,
		"failed_count":     len(failed),
		"failed_match_ids": failed,
	})
}

// SyncAllHandler 同步全部启用联赛的指定赛季
// @Router /sync/all [post]
func (h *SyncHandler) SyncAllHandler(c *gin.Context) {
	seasonID, err := strconv.Atoi(c.Query("season"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "season参数缺失或非法"})
		return
	}

	results, err := h.seasonSync.SyncAll(c.Request.Context(), seasonID)
	if err != nil {
		h.logger.Errorf("全联赛同步失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"season": seasonID, "results": results})
}

// SyncMatchHandler 单场比赛补数（运维用）
// @Router /sync/match/{id} [post]
func (h *SyncHandler) SyncMatchHandler(c *gin.Context) {
	matchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "比赛ID非法"})
		return
	}
	code := c.Query("league")
	seasonID, err := strconv.Atoi(c.Query("season"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "season参数缺失或非法"})
		return
	}

	league, err := findLeague(c.Request.Context(), h.leagueRepo, code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if league == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "未知联赛代码: " + code})
		return
	}

	if err := h.matchSync.Reconcile(c.Request.Context(), service.NewSyncContext(), matchID, league.TMLeagueID, seasonID); err != nil {
		h.logger.Errorf("补数比赛%d失败: %v", matchID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "比赛补数完成", "match_id": matchID})
}

// SyncCoachHandler 单个教练补数（运维用）
// @Router /sync/coach/{id} [post]
func (h *SyncHandler) SyncCoachHandler(c *gin.Context) {
	coachID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "教练ID非法"})
		return
	}

	if err := h.coachSync.Reconcile(c.Request.Context(), service.NewSyncContext(), coachID); err != nil {
		h.logger.Errorf("补数教练%d失败: %v", coachID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "教练补数完成", "coach_id": coachID})
}
