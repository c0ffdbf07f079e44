package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLeagueInfo(t *testing.T) {
	info, ok := GetLeagueInfo("E0")
	require.True(t, ok)
	assert.Equal(t, "GB1", info.TMCode)
	assert.Equal(t, "England", info.Country)
	assert.Equal(t, 1, info.Tier)

	_, ok = GetLeagueInfo("不存在")
	assert.False(t, ok)
}

func TestLeagueMapTMCodesUnique(t *testing.T) {
	seen := make(map[string]string)
	for code, info := range FootballDataToTMLeagueMap {
		prev, dup := seen[info.TMCode]
		require.Falsef(t, dup, "数据源代码%s被%s与%s重复使用", info.TMCode, prev, code)
		seen[info.TMCode] = code
	}
}
