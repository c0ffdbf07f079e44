package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"MatchSync/internal/config"
	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"
	"MatchSync/internal/utils/httpclient"

	"github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
)

// Extractor 足球数据源REST抽取器，实现interfaces.SourceExtractor。
// 网络调用带有界重试（指数退避），重试耗尽以抓取失败上抛而非崩溃
type Extractor struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewExtractor(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.SourceExtractor {
	return &Extractor{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// seasonMatchesPayload 赛季赛程接口响应
type seasonMatchesPayload struct {
	Matches []seasonMatchPayload `json:"matches"`
}

type seasonMatchPayload struct {
	MatchID    int64  `json:"match_id"`     // 数据源比赛ID
	Date       string `json:"date"`         // 日期（可能为空）
	HomeClubID int64  `json:"home_club_id"` // 主队俱乐部ID
	AwayClubID int64  `json:"away_club_id"` // 客队俱乐部ID
	HomeGoals  *int   `json:"home_goals"`   // 主队进球（未完赛为null）
	AwayGoals  *int   `json:"away_goals"`   // 客队进球
}

// matchDetailPayload 比赛详情接口响应
type matchDetailPayload struct {
	MatchID     int64  `json:"match_id"`
	Date        string `json:"date"`
	HomeClubID  int64  `json:"home_club_id"`
	AwayClubID  int64  `json:"away_club_id"`
	HomeCoachID *int64 `json:"home_coach_id"` // 详情页缺教练时为null
	AwayCoachID *int64 `json:"away_coach_id"`
	Attendance  *int   `json:"attendance"`
	HomeScore   *int   `json:"home_score"` // 无最终比分时为null
	AwayScore   *int   `json:"away_score"`
}

// coachDetailPayload 教练详情接口响应
type coachDetailPayload struct {
	CoachID         int64           `json:"coach_id"`
	Name            string          `json:"name"`
	DOB             string          `json:"dob"`
	Country         *string         `json:"country"`
	CoachingLicense *string         `json:"coaching_license"`
	Tenures         []tenurePayload `json:"tenures"`
}

type tenurePayload struct {
	ClubID    int64  `json:"club_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"` // 空=仍在任
	Role      string `json:"role"`
}

func (e *Extractor) FetchSeasonMatches(ctx context.Context, leagueCode string, seasonID int) ([]model.SeasonMatch, error) {
	url := fmt.Sprintf("%s/leagues/%s/seasons/%d/matches", e.cfg.BaseURL, leagueCode, seasonID)
	var payload seasonMatchesPayload
	if err := e.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("获取%s赛季%d赛程失败: %w", leagueCode, seasonID, err)
	}

	matches := make([]model.SeasonMatch, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		matches = append(matches, model.SeasonMatch{
			TMMatchID:  m.MatchID,
			Date:       e.parseDate(m.Date, "date"),
			HomeClubID: m.HomeClubID,
			AwayClubID: m.AwayClubID,
			HomeGoals:  m.HomeGoals,
			AwayGoals:  m.AwayGoals,
		})
	}

	e.logger.Infof("成功获取%s赛季%d赛程共%d场", leagueCode, seasonID, len(matches))
	return matches, nil
}

func (e *Extractor) FetchMatchDetail(ctx context.Context, matchID int64) (*model.MatchDetail, error) {
	url := fmt.Sprintf("%s/matches/%d", e.cfg.BaseURL, matchID)
	var payload matchDetailPayload
	if err := e.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("获取比赛%d详情失败: %w", matchID, err)
	}

	// 失败分类：无最终比分与缺教练是两类显式失败，均不允许部分入库
	if payload.HomeScore == nil || payload.AwayScore == nil {
		return nil, fmt.Errorf("比赛%d: %w", matchID, interfaces.ErrMissingResult)
	}
	if payload.HomeCoachID == nil || payload.AwayCoachID == nil {
		return nil, fmt.Errorf("比赛%d: %w", matchID, interfaces.ErrMissingCoach)
	}

	return &model.MatchDetail{
		TMMatchID:   payload.MatchID,
		Date:        e.parseDate(payload.Date, "date"),
		HomeClubID:  payload.HomeClubID,
		AwayClubID:  payload.AwayClubID,
		HomeCoachID: payload.HomeCoachID,
		AwayCoachID: payload.AwayCoachID,
		Attendance:  payload.Attendance,
		HomeScore:   payload.HomeScore,
		AwayScore:   payload.AwayScore,
	}, nil
}

func (e *Extractor) FetchCoachDetail(ctx context.Context, coachID int64) (*model.CoachDetail, error) {
	url := fmt.Sprintf("%s/coaches/%d", e.cfg.BaseURL, coachID)
	var payload coachDetailPayload
	if err := e.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("获取教练%d详情失败: %w", coachID, err)
	}

	tenures := make([]model.TenureRaw, 0, len(payload.Tenures))
	for _, t := range payload.Tenures {
		tenures = append(tenures, model.TenureRaw{
			ClubID:    t.ClubID,
			StartDate: e.parseDate(t.StartDate, "start_date"),
			EndDate:   e.parseDate(t.EndDate, "end_date"),
			Role:      t.Role,
		})
	}

	return &model.CoachDetail{
		TMCoachID:       payload.CoachID,
		Name:            payload.Name,
		DOB:             e.parseDate(payload.DOB, "dob"),
		Country:         payload.Country,
		CoachingLicense: payload.CoachingLicense,
		Tenures:         tenures,
	}, nil
}

// getJSON 单次GET+JSON解析，外层包有界指数退避重试；4xx视为永久错误不再重试
func (e *Extractor) getJSON(ctx context.Context, url string, out interface{}) error {
	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		resp, err := e.httpClient.Do(req)
		if err != nil {
			e.logger.WithError(err).WithField("url", url).Warn("请求数据源失败，将重试")
			return nil, err
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				e.logger.Errorf("关闭数据源响应体失败: %v", err)
			}
		}()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(fmt.Errorf("数据源返回%d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			e.logger.Warnf("数据源返回%d，将重试: %s", resp.StatusCode, url)
			return nil, fmt.Errorf("数据源返回%d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(e.cfg.RetryCount)),
	)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// parseDate 解析日期字符串；为空或格式不识别返回nil（无日期的场次排序时置后）
func (e *Extractor) parseDate(s string, fieldName string) *time.Time {
	if s == "" {
		return nil
	}
	formats := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			d := model.DateOnly(t)
			return &d
		}
	}
	e.logger.Warnf("解析[%s]失败（值：%s），按无日期处理", fieldName, s)
	return nil
}
