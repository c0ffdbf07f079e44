package model

// LeagueInfo football-data.co.uk 联赛代码到数据源（Transfermarkt）联赛代码的映射信息
type LeagueInfo struct {
	TMCode  string // 数据源联赛代码
	Country string // 国家
	Tier    int    // 级别（用于区分同国不同级别的重名球队）
	Name    string // 联赛全称
}

// FootballDataToTMLeagueMap football-data代码 -> 数据源联赛信息（静态查表）
var FootballDataToTMLeagueMap = map[string]LeagueInfo{
	// 英格兰
	"E0": {"GB1", "England", 1, "Premier League"},
	"E1": {"GB2", "England", 2, "Championship"},
	"E2": {"GB3", "England", 3, "League One"},
	"E3": {"GB4", "England", 4, "League Two"},
	"EC": {"GB5", "England", 5, "National League"},

	// 苏格兰
	"SC0": {"SC1", "Scotland", 1, "Premiership"},
	"SC1": {"SC2", "Scotland", 2, "Championship"},
	"SC2": {"SC3", "Scotland", 3, "League One"},
	"SC3": {"SC4", "Scotland", 4, "League Two"},

	// 德国
	"D1": {"L1", "Germany", 1, "Bundesliga"},
	"D2": {"L2", "Germany", 2, "2. Bundesliga"},

	// 意大利
	"I1": {"IT1", "Italy", 1, "Serie A"},
	"I2": {"IT2", "Italy", 2, "Serie B"},

	// 西班牙
	"SP1": {"ES1", "Spain", 1, "La Liga"},
	"SP2": {"ES2", "Spain", 2, "Segunda División"},

	// 法国
	"F1": {"FR1", "France", 1, "Ligue 1"},
	"F2": {"FR2", "France", 2, "Ligue 2"},

	// 荷兰
	"N1": {"NL1", "Netherlands", 1, "Eredivisie"},

	// 比利时
	"B1": {"BE1", "Belgium", 1, "First Division A"},

	// 葡萄牙
	"P1": {"PO1", "Portugal", 1, "Primeira Liga"},

	// 土耳其
	"T1": {"TR1", "Turkey", 1, "Süper Lig"},

	// 希腊
	"G1": {"GR1", "Greece", 1, "Super League"},

	// 其它单级别联赛
	"ARG": {"ARG1", "Argentina", 1, "Primera División"},
	"AUT": {"A1", "Austria", 1, "Bundesliga"},
	"BRA": {"BRA1", "Brazil", 1, "Série A"},
	"CHN": {"CSL", "China", 1, "Super League"},
	"DNK": {"DK1", "Denmark", 1, "Superliga"},
	"FIN": {"FI1", "Finland", 1, "Veikkausliiga"},
	"IRL": {"IR1", "Ireland", 1, "Premier Division"},
	"JPN": {"JAP1", "Japan", 1, "J1 League"},
	"MEX": {"MEX1", "Mexico", 1, "Liga MX"},
	"NOR": {"NO1", "Norway", 1, "Eliteserien"},
	"POL": {"PL1", "Poland", 1, "Ekstraklasa"},
	"ROU": {"RO1", "Romania", 1, "Liga I"},
	"RUS": {"RU1", "Russia", 1, "Premier League"},
	"SWE": {"SE1", "Sweden", 1, "Allsvenskan"},
	"SWZ": {"C1", "Switzerland", 1, "Super League"},
	"USA": {"MLS1", "United States", 1, "MLS"},
}

// GetLeagueInfo 按football-data代码查询联赛信息
func GetLeagueInfo(footballDataCode string) (LeagueInfo, bool) {
	info, ok := FootballDataToTMLeagueMap[footballDataCode]
	return info, ok
}
