package model

import (
	"time"

	"gorm.io/datatypes"
)

type League struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	TMLeagueID int64     `gorm:"column:tm_league_id;type:bigint;uniqueIndex;not null;comment:数据源联赛ID"`
	TMCode     string    `gorm:"column:tm_code;type:varchar(8);uniqueIndex;not null;comment:数据源联赛代码（如GB1）"`
	Name       string    `gorm:"column:name;type:varchar(64);not null;comment:联赛名称"`
	Country    string    `gorm:"column:country;type:varchar(32);comment:所属国家"`
	Tier       int       `gorm:"column:tier;type:int;default:1;comment:联赛级别"`
	IsEnabled  bool      `gorm:"column:is_enabled;type:boolean;default:true;comment:是否参与同步"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt  time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

type Club struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	TMClubID  int64     `gorm:"column:tm_club_id;type:bigint;uniqueIndex;not null;comment:数据源俱乐部ID"`
	Name      string    `gorm:"column:name;type:varchar(128);not null;comment:俱乐部名称"`
	Country   string    `gorm:"column:country;type:varchar(32);comment:所属国家"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

type Coach struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	TMCoachID       int64      `gorm:"column:tm_coach_id;type:bigint;uniqueIndex;not null;comment:数据源教练ID"`
	Name            string     `gorm:"column:name;type:varchar(128);not null;comment:教练姓名"`
	DOB             *time.Time `gorm:"column:dob;type:date;comment:出生日期（可空）"`
	Country         *string    `gorm:"column:country;type:varchar(32);comment:国籍（可空）"`
	CoachingLicense *string    `gorm:"column:coaching_license;type:varchar(64);comment:教练证书（可空）"`
	CreatedAt       time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// CoachTenure 教练任期，自然键为（教练ID+俱乐部ID+开始日期），重复写入不产生新行
type CoachTenure struct {
	ID        uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	CoachID   int64      `gorm:"column:coach_id;type:bigint;not null;uniqueIndex:uk_coach_club_start;comment:数据源教练ID"`
	ClubID    int64      `gorm:"column:club_id;type:bigint;not null;uniqueIndex:uk_coach_club_start;comment:数据源俱乐部ID"`
	StartDate *time.Time `gorm:"column:start_date;type:date;uniqueIndex:uk_coach_club_start;comment:任期开始日期"`
	EndDate   *time.Time `gorm:"column:end_date;type:date;comment:任期结束日期（空=仍在任）"`
	Role      string     `gorm:"column:role;type:varchar(64);comment:职务（主教练/助教等）"`
	IsCurrent bool       `gorm:"column:is_current;type:boolean;default:false;comment:是否现任（end_date为空）"`
	CreatedAt time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

type Match struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	TMMatchID   int64      `gorm:"column:tm_match_id;type:bigint;uniqueIndex;not null;comment:数据源比赛ID"`
	SeasonID    int        `gorm:"column:season_id;type:int;not null;index:idx_season_league;comment:赛季（如2025）"`
	LeagueID    int64      `gorm:"column:league_id;type:bigint;not null;index:idx_season_league;comment:数据源联赛ID"`
	Date        *time.Time `gorm:"column:date;type:date;comment:比赛日期（快照中可能缺失）"`
	HomeClubID  int64      `gorm:"column:home_club_id;type:bigint;not null;comment:主队俱乐部ID"`
	AwayClubID  int64      `gorm:"column:away_club_id;type:bigint;not null;comment:客队俱乐部ID"`
	HomeCoachID int64      `gorm:"column:home_coach_id;type:bigint;not null;comment:主队教练ID（外键，须先入库）"`
	AwayCoachID int64      `gorm:"column:away_coach_id;type:bigint;not null;comment:客队教练ID（外键，须先入库）"`
	Attendance  *int       `gorm:"column:attendance;type:int;comment:观众人数（可空）"`
	HomeScore   int        `gorm:"column:home_score;type:int;not null;comment:主队进球"`
	AwayScore   int        `gorm:"column:away_score;type:int;not null;comment:客队进球"`
	HomePoints  int        `gorm:"column:home_points;type:int;not null;comment:主队积分（由比分推导）"`
	AwayPoints  int        `gorm:"column:away_points;type:int;not null;comment:客队积分（由比分推导）"`
	CreatedAt   time.Time  `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// LeagueSeasonState 每个（联赛+赛季）一条的同步进度记录，跨运行覆盖写
type LeagueSeasonState struct {
	ID                     uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	LeagueID               int64          `gorm:"column:league_id;type:bigint;not null;uniqueIndex:uk_league_season;comment:数据源联赛ID"`
	SeasonID               int            `gorm:"column:season_id;type:int;not null;uniqueIndex:uk_league_season;comment:赛季"`
	LastProcessedMatchID   *int64         `gorm:"column:last_processed_match_id;type:bigint;comment:最近处理的比赛ID"`
	LastProcessedMatchDate *time.Time     `gorm:"column:last_processed_match_date;type:date;comment:最近处理的比赛日期"`
	TotalMatchesProcessed  int            `gorm:"column:total_matches_processed;type:int;default:0;comment:历次运行累计处理数（单调不减）"`
	FailedMatchIDs         datatypes.JSON `gorm:"column:failed_match_ids;type:jsonb;comment:最近一次运行失败的比赛ID列表"`
	Status                 string         `gorm:"column:status;type:varchar(32);default:in_progress;comment:状态：in_progress/completed/completed_with_errors/error"`
	LastUpdatedAt          time.Time      `gorm:"column:last_updated_at;type:timestamp;default:now();comment:最近更新时间"`
}

func (League) TableName() string            { return "leagues" }
func (Club) TableName() string              { return "clubs" }
func (Coach) TableName() string             { return "coaches" }
func (CoachTenure) TableName() string       { return "coach_tenures" }
func (Match) TableName() string             { return "matches" }
func (LeagueSeasonState) TableName() string { return "league_season_state" }
