package service

import (
	"context"
	"testing"

	"MatchSync/internal/interfaces"
	"MatchSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatchTestStack() (*MatchSyncService, *fakeExtractor, *fakeMatchRepo, *fakeCoachRepo) {
	logger := testLogger()
	ext := newFakeExtractor()
	matchRepo := newFakeMatchRepo()
	coachRepo := newFakeCoachRepo()
	tenureRepo := newFakeTenureRepo(100, 200)
	coachSync := NewCoachSyncService(coachRepo, tenureRepo, ext, logger)
	return NewMatchSyncService(matchRepo, coachSync, ext, logger), ext, matchRepo, coachRepo
}

func TestMatchReconcilePersistsMatchAndPoints(t *testing.T) {
	svc, ext, matchRepo, coachRepo := newMatchTestStack()
	seedMatch(ext, 1, daysFromNow(-1), 2, 1)

	err := svc.Reconcile(context.Background(), NewSyncContext(), 1, 7, 2025)
	require.NoError(t, err)

	m := matchRepo.matches[1]
	require.NotNil(t, m)
	assert.Equal(t, 7, int(m.LeagueID))
	assert.Equal(t, 2025, m.SeasonID)
	assert.Equal(t, 2, m.HomeScore)
	assert.Equal(t, 1, m.AwayScore)
	assert.Equal(t, 3, m.HomePoints)
	assert.Equal(t, 0, m.AwayPoints)

	// 两名教练随比赛一并入库
	assert.Len(t, coachRepo.coaches, 2)
}

func TestMatchReconcileIdempotentWithinRun(t *testing.T) {
	svc, ext, matchRepo, _ := newMatchTestStack()
	seedMatch(ext, 1, daysFromNow(-1), 0, 0)

	sctx := NewSyncContext()
	require.NoError(t, svc.Reconcile(context.Background(), sctx, 1, 7, 2025))
	require.NoError(t, svc.Reconcile(context.Background(), sctx, 1, 7, 2025))

	// 第二次调用命中会话缓存，详情只拉一次、只写一次
	assert.Equal(t, 1, ext.matchFetchCount[1])
	assert.Equal(t, 1, matchRepo.upsertCount[1])
}

func TestMatchReconcileSkipsAlreadyStored(t *testing.T) {
	svc, ext, matchRepo, _ := newMatchTestStack()
	matchRepo.matches[1] = &model.Match{TMMatchID: 1, SeasonID: 2025, LeagueID: 7}

	sctx := NewSyncContext()
	require.NoError(t, svc.Reconcile(context.Background(), sctx, 1, 7, 2025))

	// 跨运行幂等：库中已有则不拉详情不重写
	assert.Equal(t, 0, ext.matchFetchCount[1])
	assert.Equal(t, 0, matchRepo.upsertCount[1])
	// 且结果记入会话缓存
	_, cached := sctx.MatchCache[1]
	assert.True(t, cached)
}

func TestMatchReconcileMissingResultPropagates(t *testing.T) {
	svc, ext, matchRepo, _ := newMatchTestStack()
	ext.matchErrs[1] = interfaces.ErrMissingResult

	err := svc.Reconcile(context.Background(), NewSyncContext(), 1, 7, 2025)
	require.Error(t, err)
	assert.ErrorIs(t, err, interfaces.ErrMissingResult)
	assert.Empty(t, matchRepo.matches)
}

func TestMatchReconcileCoachFailureBlocksMatchWrite(t *testing.T) {
	svc, ext, matchRepo, coachRepo := newMatchTestStack()
	seedMatch(ext, 1, daysFromNow(-1), 1, 1)

	// 主队教练详情拉取失败；客队教练正常
	homeCoach := *ext.matchDetails[1].HomeCoachID
	awayCoach := *ext.matchDetails[1].AwayCoachID
	delete(ext.coachDetails, homeCoach)
	ext.coachErrs[homeCoach] = interfaces.ErrMissingCoach

	err := svc.Reconcile(context.Background(), NewSyncContext(), 1, 7, 2025)
	require.Error(t, err)
	assert.ErrorIs(t, err, interfaces.ErrMissingCoach)

	// 比赛不写；但客队教练已独立补齐
	assert.Empty(t, matchRepo.matches)
	assert.Equal(t, 1, ext.coachFetchCount[awayCoach])
	assert.Contains(t, coachRepo.coaches, awayCoach)
}

func TestMatchReconcileSharedCoachFetchedOnce(t *testing.T) {
	svc, ext, _, _ := newMatchTestStack()
	seedMatch(ext, 1, daysFromNow(-2), 1, 0)
	seedMatch(ext, 2, daysFromNow(-1), 0, 1)

	// 两场比赛共用同一主队教练
	shared := *ext.matchDetails[1].HomeCoachID
	ext.matchDetails[2].HomeCoachID = &shared

	sctx := NewSyncContext()
	require.NoError(t, svc.Reconcile(context.Background(), sctx, 1, 7, 2025))
	require.NoError(t, svc.Reconcile(context.Background(), sctx, 2, 7, 2025))

	// 同一次运行内共用教练只拉一次详情
	assert.Equal(t, 1, ext.coachFetchCount[shared])
}
