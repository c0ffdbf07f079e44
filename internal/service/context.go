package service

// SyncContext 单次同步调用内的会话缓存：按实体类型记录本次运行已处理的ID，
// 避免同一次运行内的重复库查询。显式传引用给各处理单元，不做全局状态，
// 以便并行调用与测试相互隔离
type SyncContext struct {
	MatchCache map[int64]struct{} // 本次运行已处理的比赛ID
	CoachCache map[int64]struct{} // 本次运行已处理的教练ID
}

func NewSyncContext() *SyncContext {
	return &SyncContext{
		MatchCache: make(map[int64]struct{}),
		CoachCache: make(map[int64]struct{}),
	}
}
