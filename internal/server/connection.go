package server

import (
	"log"
	"net/http"
)

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	// 创建客户端，认证在收到 auth 消息时完成
	client := NewClient(s, conn)
	client.IP = r.RemoteAddr
	s.registerClient(client)

	log.Printf("✅ 新连接 %s (IP: %s)", client.ConnID, client.IP)

	// 启动客户端读写协程
	go client.ReadPump()
	go client.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ConnID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ConnID]; ok {
		delete(s.clients, client.ConnID)
		if client.UserID != 0 && s.byUser[client.UserID] == client {
			delete(s.byUser, client.UserID)
		}
		log.Printf("❌ 玩家 %s (%s) 已断开", client.Name, client.ConnID)
	}
}

// bindUser 绑定已认证用户。同一用户重复登录时顶掉旧连接。
func (s *Server) bindUser(client *Client) {
	s.clientsMu.Lock()
	old := s.byUser[client.UserID]
	s.byUser[client.UserID] = client
	s.clientsMu.Unlock()

	if old != nil && old != client {
		log.Printf("⚠️  用户 %d 重复登录，关闭旧连接 %s", client.UserID, old.ConnID)
		old.Close()
	}
}

// clientByUser 按用户 ID 查找在线客户端
func (s *Server) clientByUser(userID int64) *Client {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return s.byUser[userID]
}
