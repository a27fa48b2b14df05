package server

import (
	"log"

	"github.com/xauspro/truth-or-dare/internal/apperrors"
	"github.com/xauspro/truth-or-dare/internal/game"
	"github.com/xauspro/truth-or-dare/internal/protocol"
)

// handleGetTask 当前回合玩家抽取真心话或大冒险，任务对全房间可见
func (h *Handler) handleGetTask(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.GetTaskPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	kind := game.TaskKind(payload.Kind)
	if kind != game.TaskTruth && kind != game.TaskDare {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	g, ok := h.currentTurnGame(client)
	if !ok {
		return
	}

	text, fail := h.server.engine.GetTask(g.ID, kind)
	switch fail {
	case game.FailNoTasks:
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNoTasks))
		return
	case game.FailGameNotFound:
		client.SendError(apperrors.ErrNotInGame)
		return
	}

	h.server.broadcastToPlayers(g.Players, protocol.MustNewMessage(protocol.MsgTask, protocol.TaskPayload{
		Kind: string(kind),
		Text: text,
	}))
}

// handleTaskDone 当前回合玩家确认完成，回合推进或触发游戏结束
func (h *Handler) handleTaskDone(client *Client) {
	g, ok := h.currentTurnGame(client)
	if !ok {
		return
	}

	ctx, cancel := h.ctx()
	defer cancel()
	if err := h.server.users.IncrTasksDone(ctx, client.UserID); err != nil {
		log.Printf("更新任务统计失败: %v", err)
	}

	g, more := h.server.engine.AdvanceTurn(g.ID)
	if g == nil {
		// 游戏在两次引擎调用之间被其他玩家结束
		client.SendError(apperrors.ErrNotInGame)
		return
	}
	if !more {
		h.finishGame(g)
		return
	}

	h.server.persistGame(g)
	h.server.broadcastToPlayers(g.Players, protocol.MustNewMessage(protocol.MsgTurn, protocol.TurnPayload{
		PlayerID:  g.CurrentPlayer,
		Round:     g.MovesDone,
		MaxRounds: g.MaxRounds,
	}))
}

// currentTurnGame 校验玩家在一局已开始的游戏中且正轮到自己
func (h *Handler) currentTurnGame(client *Client) (*game.GameState, bool) {
	g := h.server.engine.GetGameForPlayer(client.UserID)
	if g == nil {
		client.SendError(apperrors.ErrNotInGame)
		return nil, false
	}
	if !g.Started {
		client.SendError(apperrors.ErrGameNotStart)
		return nil, false
	}
	if g.CurrentPlayer != client.UserID {
		client.SendError(apperrors.ErrNotYourTurn)
		return nil, false
	}
	return g, true
}
