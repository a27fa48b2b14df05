package game

import (
	"fmt"
	"log"
)

// CreateFriendGame 创建好友房。maxRounds、maxPlayers 超出范围时
// 回落到默认值并收敛到 [2, 10]，因此本操作永不失败。
func (e *Engine) CreateFriendGame(hostID int64, categories CategorySet, maxRounds, maxPlayers int) *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	if maxRounds < 1 {
		maxRounds = DefaultMaxRounds
	}
	if maxPlayers < 1 {
		maxPlayers = DefaultMaxPlayers
	}
	maxPlayers = max(MinPlayers, min(maxPlayers, DefaultMaxPlayers))

	g := &GameState{
		ID:         e.allocGameIDLocked(),
		Kind:       KindFriend,
		Categories: categories.orDefault(),
		Players:    []int64{hostID},
		HostID:     hostID,
		InviteCode: e.generateInviteCodeLocked(),
		MaxRounds:  maxRounds,
		MaxPlayers: maxPlayers,
	}

	e.games[g.ID] = g
	e.playerGame[hostID] = g.ID
	e.inviteGame[g.InviteCode] = g.ID

	log.Printf("🏠 好友房 #%d 已创建，邀请码 %s，房主 %d", g.ID, g.InviteCode, hostID)

	return g.clone()
}

// JoinFriendGame 按邀请码加入好友房。重复加入不改变状态，
// 但仍返回对应的游戏，方便调用方恢复界面。
func (e *Engine) JoinFriendGame(inviteCode string, playerID int64) (*GameState, FailReason, string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	gameID, ok := e.inviteGame[inviteCode]
	if !ok {
		return nil, FailGameNotFound, "该邀请码对应的房间不存在"
	}
	g, ok := e.games[gameID]
	if !ok {
		// 邀请码表和游戏表必须同步删除，走到这里说明出了 bug
		return nil, FailGameNotFound, "游戏已经结束"
	}
	if g.HasPlayer(playerID) {
		return g.clone(), FailAlreadyJoined, "你已经在这局游戏中"
	}
	if len(g.Players) >= g.MaxPlayers {
		return nil, FailRoomFull, fmt.Sprintf("房间已满（%d 名玩家）", g.MaxPlayers)
	}

	g.Players = append(g.Players, playerID)
	e.playerGame[playerID] = g.ID

	log.Printf("👤 玩家 %d 加入好友房 #%d (%d/%d)", playerID, g.ID, len(g.Players), g.MaxPlayers)

	return g.clone(), FailNone, "加入成功"
}

// StartFriendGame 开始好友房游戏。只有房主可以开始，
// 至少需要 2 名玩家；开始后立即分配首个回合，
// 成功时返回开始后的游戏快照。
func (e *Engine) StartFriendGame(gameID, requesterID int64) (*GameState, FailReason, string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.games[gameID]
	if !ok {
		return nil, FailGameNotFound, "游戏不存在"
	}
	if g.HostID != requesterID {
		return nil, FailNotHost, "只有房主可以开始游戏"
	}
	if g.Started {
		return nil, FailAlreadyStarted, "游戏已经开始"
	}
	if len(g.Players) < MinPlayers {
		return nil, FailNotEnoughPlayers, "至少需要 2 名玩家才能开始"
	}

	g.Started = true
	e.assignInitialTurnLocked(g)

	log.Printf("🎮 好友房 #%d 开始，%d 名玩家，首个回合玩家 %d", g.ID, len(g.Players), g.CurrentPlayer)

	return g.clone(), FailNone, "游戏开始"
}

// FinishGame 结束游戏并从全部索引中原子移除。
// 游戏不存在时为空操作，可以安全地重复调用。
func (e *Engine) FinishGame(gameID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	g, ok := e.games[gameID]
	if !ok {
		return
	}

	delete(e.games, gameID)
	for _, p := range g.Players {
		delete(e.playerGame, p)
	}
	if g.InviteCode != "" {
		delete(e.inviteGame, g.InviteCode)
	}

	log.Printf("🏁 游戏 #%d 已结束（%d 回合）", gameID, g.MovesDone)
}
