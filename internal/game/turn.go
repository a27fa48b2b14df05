package game

import "log"

// AssignInitialTurn 在玩家列表中等概率抽取首个回合的玩家
func (e *Engine) AssignInitialTurn(gameID int64) (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.games[gameID]
	if !ok || len(g.Players) == 0 {
		return 0, false
	}
	e.assignInitialTurnLocked(g)
	return g.CurrentPlayer, true
}

// AdvanceTurn 结束当前回合并轮换，在引擎锁内返回推进后的游戏快照。
// 游戏不存在时返回 (nil, false)；回合数达到上限时返回 (快照, false)，
// 由调用方负责随后调用 FinishGame。有两名以上玩家时
// 下一位在当前玩家之外等概率抽取，绝不连续两回合同一人。
func (e *Engine) AdvanceTurn(gameID int64) (*GameState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.games[gameID]
	if !ok || len(g.Players) == 0 {
		return nil, false
	}

	g.MovesDone++
	if g.MovesDone >= g.MaxRounds {
		log.Printf("🏁 游戏 #%d 回合数达到上限（%d/%d）", g.ID, g.MovesDone, g.MaxRounds)
		return g.clone(), false
	}

	if len(g.Players) == 1 {
		g.CurrentPlayer = g.Players[0]
		return g.clone(), true
	}

	candidates := make([]int64, 0, len(g.Players)-1)
	for _, p := range g.Players {
		if p != g.CurrentPlayer {
			candidates = append(candidates, p)
		}
	}
	g.CurrentPlayer = candidates[e.rng.IntN(len(candidates))]

	return g.clone(), true
}

// assignInitialTurnLocked 持锁分配首个回合
func (e *Engine) assignInitialTurnLocked(g *GameState) {
	if len(g.Players) == 0 {
		return
	}
	g.CurrentPlayer = g.Players[e.rng.IntN(len(g.Players))]
}
