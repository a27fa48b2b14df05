package game

// GetTask 为当前游戏抽取一条任务：先在游戏类别中等概率选一个类别，
// 再在该类别的任务池中等概率选一条。不做已出题目的去重。
// 游戏不存在或类别任务池为空时返回空文本与对应的失败原因。
func (e *Engine) GetTask(gameID int64, kind TaskKind) (string, FailReason) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.games[gameID]
	if !ok {
		return "", FailGameNotFound
	}

	categories := g.Categories.orDefault()
	category := categories[e.rng.IntN(len(categories))]

	pool := e.tasks.Tasks(category, kind)
	if len(pool) == 0 {
		return "", FailNoTasks
	}
	return pool[e.rng.IntN(len(pool))], FailNone
}
