package server

import (
	"log"
	"strings"

	"github.com/xauspro/truth-or-dare/internal/apperrors"
	"github.com/xauspro/truth-or-dare/internal/game"
	"github.com/xauspro/truth-or-dare/internal/protocol"
)

// handleCreateRoom 创建好友房间。
// 未指定类别时沿用用户资料里保存的类别。
func (h *Handler) handleCreateRoom(client *Client, msg *protocol.Message) {
	var payload protocol.CreateRoomPayload
	if len(msg.Payload) > 0 {
		p, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
		if err != nil {
			client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			return
		}
		payload = *p
	}

	if g := h.server.engine.GetGameForPlayer(client.UserID); g != nil {
		client.SendError(apperrors.ErrAlreadyInGame)
		return
	}

	categories := payload.Categories
	if len(categories) == 0 {
		ctx, cancel := h.ctx()
		defer cancel()
		if user, err := h.server.users.GetUser(ctx, client.UserID); err == nil && user != nil {
			categories = user.Categories
		}
	}

	// 未指定时回落到服务器配置的默认值
	maxRounds := payload.MaxRounds
	if maxRounds == 0 {
		maxRounds = h.server.config.Game.MaxRounds
	}
	maxPlayers := payload.MaxPlayers
	if maxPlayers == 0 {
		maxPlayers = h.server.config.Game.MaxPlayers
	}

	g := h.server.engine.CreateFriendGame(
		client.UserID,
		game.ParseCategories(categories),
		maxRounds,
		maxPlayers,
	)
	h.server.persistGame(g)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		GameID:     g.ID,
		InviteCode: g.InviteCode,
		Categories: g.Categories.Strings(),
		MaxRounds:  g.MaxRounds,
		MaxPlayers: g.MaxPlayers,
	}))
}

// handleJoinRoom 凭邀请码加入房间
func (h *Handler) handleJoinRoom(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil || payload.InviteCode == "" {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	code := strings.ToUpper(strings.TrimSpace(payload.InviteCode))
	g, fail, reason := h.server.engine.JoinFriendGame(code, client.UserID)
	if fail != game.FailNone {
		client.SendMessage(protocol.NewErrorMessageWithText(mapFailReason(fail).Code, reason))
		return
	}
	h.server.persistGame(g)

	players := h.playerInfos(g)
	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		GameID:     g.ID,
		InviteCode: g.InviteCode,
		Players:    players,
	}))

	// 通知房间里的其他玩家
	joined := protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: h.playerInfo(g, client.UserID),
	})
	for _, pid := range g.Players {
		if pid == client.UserID {
			continue
		}
		h.server.sendToUser(pid, joined)
	}
}

// handleStartRoom 房主开始游戏
func (h *Handler) handleStartRoom(client *Client) {
	g := h.server.engine.GetGameForPlayer(client.UserID)
	if g == nil {
		client.SendError(apperrors.ErrNotInGame)
		return
	}

	started, fail, reason := h.server.engine.StartFriendGame(g.ID, client.UserID)
	if fail != game.FailNone {
		client.SendMessage(protocol.NewErrorMessageWithText(mapFailReason(fail).Code, reason))
		return
	}

	h.server.persistGame(started)

	h.server.broadcastToPlayers(started.Players, protocol.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{
		GameID:        started.ID,
		Players:       h.playerInfos(started),
		CurrentPlayer: started.CurrentPlayer,
		MaxRounds:     started.MaxRounds,
	}))
}

// handleEndGame 任意玩家可以提前结束游戏
func (h *Handler) handleEndGame(client *Client) {
	g := h.server.engine.GetGameForPlayer(client.UserID)
	if g == nil {
		client.SendError(apperrors.ErrNotInGame)
		return
	}

	h.finishGame(g)
}

// finishGame 结束游戏：更新统计、清理快照并广播 game_over
func (h *Handler) finishGame(g *game.GameState) {
	h.server.engine.FinishGame(g.ID)

	ctx, cancel := h.ctx()
	defer cancel()
	if err := h.server.users.IncrGamesPlayed(ctx, g.Players...); err != nil {
		log.Printf("更新游戏统计失败: %v", err)
	}
	if err := h.server.store.DeleteGame(ctx, g.ID); err != nil {
		log.Printf("删除游戏快照失败: %v", err)
	}

	h.server.broadcastToPlayers(g.Players, protocol.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		GameID: g.ID,
		Rounds: g.MovesDone,
	}))
}

// playerInfos 组装房间玩家列表，昵称从用户库补齐
func (h *Handler) playerInfos(g *game.GameState) []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(g.Players))
	for _, pid := range g.Players {
		infos = append(infos, h.playerInfo(g, pid))
	}
	return infos
}

func (h *Handler) playerInfo(g *game.GameState, userID int64) protocol.PlayerInfo {
	info := protocol.PlayerInfo{
		ID:     userID,
		IsHost: g.HostID == userID,
	}

	ctx, cancel := h.ctx()
	defer cancel()
	if user, err := h.server.users.GetUser(ctx, userID); err == nil && user != nil {
		info.Name = user.Name
	}
	return info
}

// mapFailReason 把引擎失败原因映射到业务错误
func mapFailReason(fail game.FailReason) *apperrors.GameError {
	switch fail {
	case game.FailAlreadyJoined:
		return apperrors.ErrAlreadyInGame
	case game.FailRoomFull:
		return apperrors.ErrRoomFull
	case game.FailNotHost:
		return apperrors.ErrNotHost
	case game.FailAlreadyStarted:
		return apperrors.ErrGameStarted
	case game.FailNotEnoughPlayers:
		return apperrors.ErrNotEnoughPlayer
	default:
		return apperrors.ErrRoomNotFound
	}
}
