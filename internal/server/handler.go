package server

import (
	"context"
	"log"
	"time"

	"github.com/xauspro/truth-or-dare/internal/protocol"
)

// Handler 消息处理器
type Handler struct {
	server   *Server
	handlers map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client *Client, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(s *Server) *Handler {
	h := &Handler{server: s}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,
		protocol.MsgAuth: h.handleAuth,

		// 房间操作
		protocol.MsgCreateRoom:   h.handleCreateRoom,
		protocol.MsgJoinRoom:     h.handleJoinRoom,
		protocol.MsgStartRoom:    func(c *Client, _ *protocol.Message) { h.handleStartRoom(c) },
		protocol.MsgFindRandom:   func(c *Client, _ *protocol.Message) { h.handleFindRandom(c) },
		protocol.MsgCancelSearch: func(c *Client, _ *protocol.Message) { h.handleCancelSearch(c) },
		protocol.MsgEndGame:      func(c *Client, _ *protocol.Message) { h.handleEndGame(c) },

		// 游戏操作
		protocol.MsgGetTask:  h.handleGetTask,
		protocol.MsgTaskDone: func(c *Client, _ *protocol.Message) { h.handleTaskDone(c) },

		// 个人资料
		protocol.MsgGetStats:       func(c *Client, _ *protocol.Message) { h.handleGetStats(c) },
		protocol.MsgSetProfile:     h.handleSetProfile,
		protocol.MsgSetCategories:  h.handleSetCategories,
		protocol.MsgSetSearchPrefs: h.handleSetSearchPrefs,
	}
}

// Handle 处理消息。除 auth 和 ping 外的所有操作都要求先认证。
func (h *Handler) Handle(client *Client, msg *protocol.Message) {
	handler, ok := h.handlers[msg.Type]
	if !ok {
		log.Printf("⚠️  未知消息类型: '%s' (连接: %s)", msg.Type, client.ConnID)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if client.UserID == 0 && msg.Type != protocol.MsgAuth && msg.Type != protocol.MsgPing {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNotAuthed))
		return
	}

	handler(client, msg)
}

// handlePing 处理心跳消息
func (h *Handler) handlePing(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	// 立即回复 pong
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleAuth 处理登录认证
func (h *Handler) handleAuth(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.AuthPayload](msg)
	if err != nil || payload.UserID <= 0 {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	ctx, cancel := h.ctx()
	defer cancel()

	user, err := h.server.users.UpsertUser(ctx, payload.UserID, payload.Name)
	if err != nil {
		log.Printf("用户注册失败: %v", err)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	client.UserID = user.ID
	client.Name = user.Name
	h.server.bindUser(client)

	log.Printf("✅ 玩家 %s (%d) 已登录", client.Name, client.UserID)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgAuthed, protocol.AuthedPayload{
		UserID:    user.ID,
		Name:      user.Name,
		IsPremium: user.IsPremium,
	}))
}

// ctx 返回处理单条消息用的带超时上下文
func (h *Handler) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
