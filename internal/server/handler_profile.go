package server

import (
	"log"

	"github.com/xauspro/truth-or-dare/internal/game"
	"github.com/xauspro/truth-or-dare/internal/protocol"
)

// handleGetStats 查询个人统计
func (h *Handler) handleGetStats(client *Client) {
	ctx, cancel := h.ctx()
	defer cancel()

	user, err := h.server.users.GetUser(ctx, client.UserID)
	if err != nil || user == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	searches, err := h.server.store.SearchCount(ctx, client.UserID)
	if err != nil {
		log.Printf("查询匹配计数失败: %v", err)
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
		UserID:        user.ID,
		Name:          user.Name,
		GamesPlayed:   user.GamesPlayed,
		TasksDone:     user.TasksDone,
		SearchesToday: int(searches),
		IsPremium:     user.IsPremium,
		Categories:    game.ParseCategories(user.Categories).Strings(),
	}))
}

// handleSetProfile 设置性别与年龄
func (h *Handler) handleSetProfile(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.SetProfilePayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	gender := game.Gender(payload.Gender)
	if (gender != game.GenderMale && gender != game.GenderFemale) ||
		payload.Age < 16 || payload.Age > 99 {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidProfile))
		return
	}

	ctx, cancel := h.ctx()
	defer cancel()
	if err := h.server.users.SetProfile(ctx, client.UserID, payload.Gender, payload.Age); err != nil {
		log.Printf("保存资料失败: %v", err)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgProfileSaved, protocol.ProfileSavedPayload{
		Gender: payload.Gender,
		Age:    payload.Age,
	}))
}

// handleSetCategories 设置任务类别，非法项被过滤，全部非法时回落默认
func (h *Handler) handleSetCategories(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.SetCategoriesPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	categories := game.ParseCategories(payload.Categories)

	ctx, cancel := h.ctx()
	defer cancel()
	if err := h.server.users.SetCategories(ctx, client.UserID, categories.Strings()); err != nil {
		log.Printf("保存类别失败: %v", err)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgProfileSaved, protocol.ProfileSavedPayload{
		Categories: categories.Strings(),
	}))
}

// handleSetSearchPrefs 设置匹配偏好
func (h *Handler) handleSetSearchPrefs(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.SetSearchPrefsPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	switch game.Gender(payload.Gender) {
	case game.GenderMale, game.GenderFemale, game.GenderAny, "":
	default:
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidProfile))
		return
	}
	if payload.AgeMin < 0 || payload.AgeMax < 0 ||
		(payload.AgeMax != 0 && payload.AgeMin > payload.AgeMax) {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidProfile))
		return
	}

	ctx, cancel := h.ctx()
	defer cancel()
	if err := h.server.users.SetSearchPrefs(ctx, client.UserID, payload.Gender, payload.AgeMin, payload.AgeMax); err != nil {
		log.Printf("保存匹配偏好失败: %v", err)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgProfileSaved, protocol.ProfileSavedPayload{
		Gender: payload.Gender,
	}))
}
