package server

import (
	"log"

	"github.com/xauspro/truth-or-dare/internal/apperrors"
	"github.com/xauspro/truth-or-dare/internal/game"
	"github.com/xauspro/truth-or-dare/internal/protocol"
)

// handleFindRandom 随机匹配。
// 非会员受每日免费次数限制，会员不限次且在队列中优先。
func (h *Handler) handleFindRandom(client *Client) {
	ctx, cancel := h.ctx()
	defer cancel()

	user, err := h.server.users.GetUser(ctx, client.UserID)
	if err != nil || user == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	// 已在游戏中时直接拿回当前游戏，不消耗匹配次数
	if g := h.server.engine.GetGameForPlayer(client.UserID); g == nil && !user.IsPremium {
		count, err := h.server.store.SearchCount(ctx, client.UserID)
		if err != nil {
			log.Printf("查询匹配计数失败: %v", err)
		}
		if count >= int64(h.server.config.Game.FreeSearchesPerDay) {
			client.SendError(apperrors.ErrSearchLimit)
			return
		}
	}

	req := game.MatchRequest{
		PlayerID:   client.UserID,
		Categories: game.ParseCategories(user.Categories),
		Prefs: game.SearchPrefs{
			Gender: game.Gender(user.SearchGender),
			AgeMin: user.SearchAgeMin,
			AgeMax: user.SearchAgeMax,
		},
		Gender:    game.Gender(user.Gender),
		Age:       user.Age,
		IsPremium: user.IsPremium,
	}

	alreadyPlaying := h.server.engine.GetGameForPlayer(client.UserID) != nil
	alreadyWaiting := h.server.engine.IsWaiting(client.UserID)
	g := h.server.engine.FindOrEnqueueRandom(req)

	// 新发起的匹配才计入每日额度
	if !alreadyPlaying && !alreadyWaiting && !user.IsPremium {
		if _, err := h.server.store.IncrSearchCount(ctx, client.UserID, h.server.config.Game.SearchWindow()); err != nil {
			log.Printf("更新匹配计数失败: %v", err)
		}
	}

	if g == nil {
		client.SendMessage(protocol.MustNewMessage(protocol.MsgSearching, protocol.SearchingPayload{
			Waiting: h.server.engine.WaitingCount(),
		}))
		return
	}

	h.server.persistGame(g)
	h.notifyMatchFound(g)
}

// handleCancelSearch 取消匹配，取消成功时返还当次额度
func (h *Handler) handleCancelSearch(client *Client) {
	if h.server.engine.CancelWait(client.UserID) {
		ctx, cancel := h.ctx()
		defer cancel()
		if err := h.server.store.DecrSearchCount(ctx, client.UserID); err != nil {
			log.Printf("返还匹配计数失败: %v", err)
		}
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgSearchCancelled, nil))
}

// notifyMatchFound 向匹配成功的双方分别发送 match_found，
// 各自的 opponent 字段指向对方。
func (h *Handler) notifyMatchFound(g *game.GameState) {
	for _, pid := range g.Players {
		var opponent protocol.PlayerInfo
		for _, other := range g.Players {
			if other != pid {
				opponent = h.playerInfo(g, other)
				break
			}
		}

		h.server.sendToUser(pid, protocol.MustNewMessage(protocol.MsgMatchFound, protocol.MatchFoundPayload{
			GameID:        g.ID,
			Opponent:      opponent,
			Categories:    g.Categories.Strings(),
			CurrentPlayer: g.CurrentPlayer,
		}))
	}
}
