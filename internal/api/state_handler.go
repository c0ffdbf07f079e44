package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"MatchSync/internal/model"
	"MatchSync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StateHandler 同步进度查询与教练任期定位接口（给监控与运维用）
type StateHandler struct {
	stateRepo  repository.StateRepository
	coachRepo  repository.CoachRepository
	leagueRepo repository.LeagueRepository
	logger     *logrus.Logger
}

func NewStateHandler(db *gorm.DB, logger *logrus.Logger) *StateHandler {
	return &StateHandler{
		stateRepo:  repository.NewStateRepository(db),
		coachRepo:  repository.NewCoachRepository(db),
		leagueRepo: repository.NewLeagueRepository(db),
		logger:     logger,
	}
}

// GetStateHandler 查询一个联赛赛季的同步进度
// @Router /api/state/{code}/{season} [get]
func (h *StateHandler) GetStateHandler(c *gin.Context) {
	league, seasonID, ok := h.resolveLeagueSeason(c)
	if !ok {
		return
	}

	state, err := h.stateRepo.Get(c.Request.Context(), league.TMLeagueID, seasonID)
	if err != nil {
		h.logger.Errorf("查询进度失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if state == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该联赛赛季尚无同步记录"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"league_id":                 state.LeagueID,
		"season_id":                 state.SeasonID,
		"last_processed_match_id":   state.LastProcessedMatchID,
		"last_processed_match_date": state.LastProcessedMatchDate,
		"total_matches_processed":   state.TotalMatchesProcessed,
		"failed_match_ids":          model.UnmarshalFailedIDs(state.FailedMatchIDs),
		"status":                    state.Status,
		"last_updated_at":           state.LastUpdatedAt,
	})
}

// DeleteStateHandler 删除进度记录（下次同步按全新赛季处理）
// @Router /api/state/{code}/{season} [delete]
func (h *StateHandler) DeleteStateHandler(c *gin.Context) {
	league, seasonID, ok := h.resolveLeagueSeason(c)
	if !ok {
		return
	}

	if err := h.stateRepo.Delete(c.Request.Context(), league.TMLeagueID, seasonID); err != nil {
		h.logger.Errorf("删除进度失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "进度记录已删除"})
}

// CoachAtDateHandler 查询指定日期在某俱乐部执教的教练（任期区间定位）
// @Param club query int true "数据源俱乐部ID"
// @Param date query string true "目标日期（2006-01-02）"
// @Router /api/coach-at-date [get]
func (h *StateHandler) CoachAtDateHandler(c *gin.Context) {
	clubID, err := strconv.ParseInt(c.Query("club"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "club参数缺失或非法"})
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date参数缺失或非法（格式2006-01-02）"})
		return
	}

	coachID, ambiguous, err := h.coachRepo.FindCoachAtDate(c.Request.Context(), clubID, date)
	if errors.Is(err, repository.ErrNoTenureAtDate) {
		c.JSON(http.StatusNotFound, gin.H{"error": "该日期无任期记录"})
		return
	}
	if err != nil {
		h.logger.Errorf("任期定位失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// ambiguous=true 表示源数据任期重叠，结果取开始日期最近的一条
	c.JSON(http.StatusOK, gin.H{"coach_id": coachID, "ambiguous": ambiguous})
}

// resolveLeagueSeason 解析路径里的联赛代码与赛季；失败时已写响应
func (h *StateHandler) resolveLeagueSeason(c *gin.Context) (*model.League, int, bool) {
	code := c.Param("code")
	seasonID, err := strconv.Atoi(c.Param("season"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "season非法"})
		return nil, 0, false
	}

	league, err := findLeague(c.Request.Context(), h.leagueRepo, code)
	if err != nil {
		h.logger.Errorf("查询联赛%s失败: %v", code, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, 0, false
	}
	if league == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "未知联赛代码: " + code})
		return nil, 0, false
	}
	return league, seasonID, true
}
