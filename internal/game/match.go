package game

import (
	"log"
	"slices"
	"sort"
)

// FindOrEnqueueRandom 随机匹配：在等待池中寻找互相满足偏好的对手。
// 找到则立即建局并返回；找不到则把请求入队并返回 nil，
// 由调用方通知玩家"排队中"。已在游戏中的玩家直接拿回自己的游戏。
func (e *Engine) FindOrEnqueueRandom(req MatchRequest) *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	req.Categories = req.Categories.orDefault()

	// 玩家已有游戏时幂等返回，保证"每人至多一局"
	if existing := e.gameForPlayerLocked(req.PlayerID); existing != nil {
		log.Printf("🔁 玩家 %d 已在游戏 #%d 中", req.PlayerID, existing.ID)
		return existing.clone()
	}

	// 已在等待池中则保持原排队位置，不重复入队
	if slices.ContainsFunc(e.waiting, func(w *MatchRequest) bool { return w.PlayerID == req.PlayerID }) {
		return nil
	}

	if cand := e.findCandidateLocked(&req); cand != nil {
		return e.createRandomGameLocked(cand, &req)
	}

	// 入队：高级会员插队到最前，普通玩家排到队尾
	req.seq = e.nextSeq
	e.nextSeq++
	if req.IsPremium {
		e.waiting = append([]*MatchRequest{&req}, e.waiting...)
	} else {
		e.waiting = append(e.waiting, &req)
	}

	log.Printf("🔍 玩家 %d 进入匹配等待池（premium=%v，池内 %d 人）", req.PlayerID, req.IsPremium, len(e.waiting))

	return nil
}

// CancelWait 取消匹配等待，返回是否真的移除了请求
func (e *Engine) CancelWait(playerID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, w := range e.waiting {
		if w.PlayerID == playerID {
			e.waiting = slices.Delete(e.waiting, i, i+1)
			log.Printf("🔍 玩家 %d 取消匹配等待", playerID)
			return true
		}
	}
	return false
}

// findCandidateLocked 按（会员优先，同级先到先得）的顺序扫描等待池，
// 返回第一个双向满足偏好的候选并将其移出池子。
func (e *Engine) findCandidateLocked(req *MatchRequest) *MatchRequest {
	ordered := make([]*MatchRequest, len(e.waiting))
	copy(ordered, e.waiting)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].IsPremium != ordered[j].IsPremium {
			return ordered[i].IsPremium
		}
		return ordered[i].seq < ordered[j].seq
	})

	for _, cand := range ordered {
		if cand.PlayerID == req.PlayerID {
			continue
		}
		if !fitsPreferences(req, cand) {
			continue
		}
		for i, w := range e.waiting {
			if w == cand {
				e.waiting = slices.Delete(e.waiting, i, i+1)
				break
			}
		}
		return cand
	}
	return nil
}

// fitsPreferences 双向偏好检查：
// 对手的性别/年龄要满足请求者的偏好，请求者也要满足对手的偏好，
// 且双方类别有交集。未填写的属性不参与过滤。
func fitsPreferences(req, cand *MatchRequest) bool {
	// 请求者对候选人的要求
	if req.Prefs.wantsGender() && cand.Gender != "" && cand.Gender != req.Prefs.Gender {
		return false
	}
	if cand.Age != 0 {
		if req.Prefs.AgeMin != 0 && cand.Age < req.Prefs.AgeMin {
			return false
		}
		if req.Prefs.AgeMax != 0 && cand.Age > req.Prefs.AgeMax {
			return false
		}
	}

	// 候选人对请求者的要求
	if cand.Prefs.wantsGender() && req.Gender != "" && req.Gender != cand.Prefs.Gender {
		return false
	}
	if req.Age != 0 {
		if cand.Prefs.AgeMin != 0 && req.Age < cand.Prefs.AgeMin {
			return false
		}
		if cand.Prefs.AgeMax != 0 && req.Age > cand.Prefs.AgeMax {
			return false
		}
	}

	return len(req.Categories.orDefault().Intersect(cand.Categories.orDefault())) > 0
}

// createRandomGameLocked 用匹配成功的双方建局。
// 候选人先入队，排在玩家列表第一位；类别取双方交集。
func (e *Engine) createRandomGameLocked(cand, req *MatchRequest) *GameState {
	categories := req.Categories.Intersect(cand.Categories.orDefault()).orDefault()

	g := &GameState{
		ID:         e.allocGameIDLocked(),
		Kind:       KindRandom,
		Categories: categories,
		Players:    []int64{cand.PlayerID, req.PlayerID},
		Started:    true,
		MaxRounds:  DefaultMaxRounds,
		MaxPlayers: MinPlayers,
	}

	e.games[g.ID] = g
	e.playerGame[cand.PlayerID] = g.ID
	e.playerGame[req.PlayerID] = g.ID
	e.assignInitialTurnLocked(g)

	log.Printf("🎮 随机匹配成功：游戏 #%d，玩家 %d 和 %d", g.ID, cand.PlayerID, req.PlayerID)

	return g.clone()
}
