package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"MatchSync/internal/config"
	"MatchSync/internal/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestExtractor(baseURL string, retryCount int) interfaces.SourceExtractor {
	cfg := &config.SourceConfig{
		BaseURL:    baseURL,
		Timeout:    5,
		RetryCount: retryCount,
	}
	return NewExtractor(cfg, testLogger())
}

func TestFetchSeasonMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leagues/GB1/seasons/2025/matches", r.URL.Path)
		fmt.Fprint(w, `{"matches":[
			{"match_id":1,"date":"2025-08-16","home_club_id":100,"away_club_id":200,"home_goals":2,"away_goals":1},
			{"match_id":2,"date":"","home_club_id":100,"away_club_id":300,"home_goals":null,"away_goals":null},
			{"match_id":3,"date":"总有脏数据","home_club_id":200,"away_club_id":300,"home_goals":0,"away_goals":0}
		]}`)
	}))
	defer srv.Close()

	matches, err := newTestExtractor(srv.URL, 1).FetchSeasonMatches(context.Background(), "GB1", 2025)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	require.NotNil(t, matches[0].Date)
	assert.Equal(t, time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC), *matches[0].Date)
	require.NotNil(t, matches[0].HomeGoals)
	assert.Equal(t, 2, *matches[0].HomeGoals)

	// 缺失与不可解析的日期都按无日期处理
	assert.Nil(t, matches[1].Date)
	assert.Nil(t, matches[1].HomeGoals)
	assert.Nil(t, matches[2].Date)
}

func TestFetchMatchDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/matches/42", r.URL.Path)
		fmt.Fprint(w, `{"match_id":42,"date":"2025-08-16T15:00:00Z","home_club_id":100,"away_club_id":200,
			"home_coach_id":11,"away_coach_id":12,"attendance":60221,"home_score":3,"away_score":1}`)
	}))
	defer srv.Close()

	detail, err := newTestExtractor(srv.URL, 1).FetchMatchDetail(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), detail.TMMatchID)
	require.NotNil(t, detail.Date)
	assert.Equal(t, time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC), *detail.Date)
	assert.Equal(t, int64(11), *detail.HomeCoachID)
	assert.Equal(t, 60221, *detail.Attendance)
	assert.Equal(t, 3, *detail.HomeScore)
}

func TestFetchMatchDetailMissingResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"match_id":42,"home_club_id":100,"away_club_id":200,
			"home_coach_id":11,"away_coach_id":12,"home_score":null,"away_score":null}`)
	}))
	defer srv.Close()

	_, err := newTestExtractor(srv.URL, 1).FetchMatchDetail(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, interfaces.ErrMissingResult)
}

func TestFetchMatchDetailMissingCoach(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"match_id":42,"home_club_id":100,"away_club_id":200,
			"home_coach_id":null,"away_coach_id":12,"home_score":1,"away_score":0}`)
	}))
	defer srv.Close()

	_, err := newTestExtractor(srv.URL, 1).FetchMatchDetail(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, interfaces.ErrMissingCoach)
}

func TestFetchCoachDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coaches/11", r.URL.Path)
		fmt.Fprint(w, `{"coach_id":11,"name":"阿尔特塔","dob":"1982-03-26","country":"Spain",
			"coaching_license":"UEFA Pro","tenures":[
			{"club_id":100,"start_date":"2019-12-20","end_date":"","role":"主教练"},
			{"club_id":200,"start_date":"2016-07-01","end_date":"2019-12-19","role":"助理教练"}
		]}`)
	}))
	defer srv.Close()

	detail, err := newTestExtractor(srv.URL, 1).FetchCoachDetail(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "阿尔特塔", detail.Name)
	require.NotNil(t, detail.DOB)
	require.Len(t, detail.Tenures, 2)

	// end_date为空串解析为nil（仍在任）
	assert.Nil(t, detail.Tenures[0].EndDate)
	require.NotNil(t, detail.Tenures[1].EndDate)
	assert.Equal(t, time.Date(2019, 12, 19, 0, 0, 0, 0, time.UTC), *detail.Tenures[1].EndDate)
}

func TestGetJSONRetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"coach_id":11,"name":"教练","tenures":[]}`)
	}))
	defer srv.Close()

	detail, err := newTestExtractor(srv.URL, 3).FetchCoachDetail(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "教练", detail.Name)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetJSONRetryExhaustion(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestExtractor(srv.URL, 2).FetchCoachDetail(context.Background(), 11)
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetJSONClientErrorIsPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestExtractor(srv.URL, 5).FetchCoachDetail(context.Background(), 11)
	require.Error(t, err)
	// 4xx不重试，只打一次
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
