package service

import (
	"context"
	"fmt"
	"time"

	"MatchSync/internal/model"
	"MatchSync/internal/repository"
)

// 内存版仓储与抽取器，测试专用

type fakeExtractor struct {
	seasonMatches   []model.SeasonMatch
	seasonErr       error
	matchDetails    map[int64]*model.MatchDetail
	matchErrs       map[int64]error
	coachDetails    map[int64]*model.CoachDetail
	coachErrs       map[int64]error
	matchFetchCount map[int64]int
	coachFetchCount map[int64]int
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{
		matchDetails:    make(map[int64]*model.MatchDetail),
		matchErrs:       make(map[int64]error),
		coachDetails:    make(map[int64]*model.CoachDetail),
		coachErrs:       make(map[int64]error),
		matchFetchCount: make(map[int64]int),
		coachFetchCount: make(map[int64]int),
	}
}

func (f *fakeExtractor) FetchSeasonMatches(_ context.Context, _ string, _ int) ([]model.SeasonMatch, error) {
	if f.seasonErr != nil {
		return nil, f.seasonErr
	}
	return f.seasonMatches, nil
}

func (f *fakeExtractor) FetchMatchDetail(_ context.Context, matchID int64) (*model.MatchDetail, error) {
	f.matchFetchCount[matchID]++
	if err, ok := f.matchErrs[matchID]; ok {
		return nil, err
	}
	d, ok := f.matchDetails[matchID]
	if !ok {
		return nil, fmt.Errorf("测试夹具缺少比赛%d", matchID)
	}
	return d, nil
}

func (f *fakeExtractor) FetchCoachDetail(_ context.Context, coachID int64) (*model.CoachDetail, error) {
	f.coachFetchCount[coachID]++
	if err, ok := f.coachErrs[coachID]; ok {
		return nil, err
	}
	d, ok := f.coachDetails[coachID]
	if !ok {
		return nil, fmt.Errorf("测试夹具缺少教练%d", coachID)
	}
	return d, nil
}

type fakeMatchRepo struct {
	matches     map[int64]*model.Match
	upsertCount map[int64]int
	existsErr   error
	fetchErr    error
	upsertErr   error
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{
		matches:     make(map[int64]*model.Match),
		upsertCount: make(map[int64]int),
	}
}

func (f *fakeMatchRepo) FetchIDsBySeasonLeague(_ context.Context, seasonID int, leagueID int64) (map[int64]struct{}, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	ids := make(map[int64]struct{})
	for id, m := range f.matches {
		if m.SeasonID == seasonID && m.LeagueID == leagueID {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

func (f *fakeMatchRepo) Exists(_ context.Context, tmMatchID int64) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.matches[tmMatchID]
	return ok, nil
}

func (f *fakeMatchRepo) Upsert(_ context.Context, m *model.Match) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upsertCount[m.TMMatchID]++
	// tm_match_id冲突不做任何修改
	if _, ok := f.matches[m.TMMatchID]; !ok {
		f.matches[m.TMMatchID] = m
	}
	return nil
}

type fakeCoachRepo struct {
	coaches     map[int64]*model.Coach
	upsertCount map[int64]int
}

func newFakeCoachRepo() *fakeCoachRepo {
	return &fakeCoachRepo{
		coaches:     make(map[int64]*model.Coach),
		upsertCount: make(map[int64]int),
	}
}

func (f *fakeCoachRepo) Exists(_ context.Context, tmCoachID int64) (bool, error) {
	_, ok := f.coaches[tmCoachID]
	return ok, nil
}

func (f *fakeCoachRepo) Upsert(_ context.Context, c *model.Coach) error {
	f.upsertCount[c.TMCoachID]++
	// tm_coach_id冲突整行覆盖
	f.coaches[c.TMCoachID] = c
	return nil
}

func (f *fakeCoachRepo) FindCoachAtDate(_ context.Context, _ int64, _ time.Time) (int64, bool, error) {
	return 0, false, repository.ErrNoTenureAtDate
}

type fakeTenureRepo struct {
	clubs   map[int64]struct{}
	tenures map[string]*model.CoachTenure
}

func newFakeTenureRepo(clubIDs ...int64) *fakeTenureRepo {
	clubs := make(map[int64]struct{}, len(clubIDs))
	for _, id := range clubIDs {
		clubs[id] = struct{}{}
	}
	return &fakeTenureRepo{
		clubs:   clubs,
		tenures: make(map[string]*model.CoachTenure),
	}
}

func tenureKey(t *model.CoachTenure) string {
	start := "nil"
	if t.StartDate != nil {
		start = t.StartDate.Format("2006-01-02")
	}
	return fmt.Sprintf("%d_%d_%s", t.CoachID, t.ClubID, start)
}

func (f *fakeTenureRepo) ClubExists(_ context.Context, tmClubID int64) (bool, error) {
	_, ok := f.clubs[tmClubID]
	return ok, nil
}

func (f *fakeTenureRepo) Upsert(_ context.Context, t *model.CoachTenure) error {
	// 自然键冲突不做任何修改
	key := tenureKey(t)
	if _, ok := f.tenures[key]; !ok {
		f.tenures[key] = t
	}
	return nil
}

type fakeStateRepo struct {
	states  map[string]*model.LeagueSeasonState
	getErr  error
	saveErr error
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{states: make(map[string]*model.LeagueSeasonState)}
}

func stateKey(leagueID int64, seasonID int) string {
	return fmt.Sprintf("%d_%d", leagueID, seasonID)
}

func (f *fakeStateRepo) Get(_ context.Context, leagueID int64, seasonID int) (*model.LeagueSeasonState, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.states[stateKey(leagueID, seasonID)], nil
}

func (f *fakeStateRepo) Save(_ context.Context, s *model.LeagueSeasonState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.states[stateKey(s.LeagueID, s.SeasonID)] = s
	return nil
}

func (f *fakeStateRepo) Delete(_ context.Context, leagueID int64, seasonID int) error {
	delete(f.states, stateKey(leagueID, seasonID))
	return nil
}

type fakeLeagueRepo struct {
	leagues []*model.League
}

func (f *fakeLeagueRepo) ListEnabled(_ context.Context) ([]*model.League, error) {
	var enabled []*model.League
	for _, l := range f.leagues {
		if l.IsEnabled {
			enabled = append(enabled, l)
		}
	}
	return enabled, nil
}

func (f *fakeLeagueRepo) GetByCode(_ context.Context, tmCode string) (*model.League, error) {
	for _, l := range f.leagues {
		if l.TMCode == tmCode {
			return l, nil
		}
	}
	return nil, nil
}
