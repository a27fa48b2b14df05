package server

import (
	"context"
	"log"
	"time"

	"github.com/xauspro/truth-or-dare/internal/game"
	"github.com/xauspro/truth-or-dare/internal/protocol"
	"github.com/xauspro/truth-or-dare/internal/storage"
)

// sendToUser 给指定在线用户发送消息，离线用户静默丢弃
func (s *Server) sendToUser(userID int64, msg *protocol.Message) bool {
	client := s.clientByUser(userID)
	if client == nil {
		return false
	}
	client.SendMessage(msg)
	return true
}

// broadcastToPlayers 给一组玩家广播消息
func (s *Server) broadcastToPlayers(players []int64, msg *protocol.Message) {
	for _, pid := range players {
		s.sendToUser(pid, msg)
	}
}

// persistGame 把游戏快照写入 Redis。
// 快照只用于观测与故障排查，写入失败不影响游戏进行。
func (s *Server) persistGame(g *game.GameState) {
	if g == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data := &storage.GameData{
		ID:            g.ID,
		Kind:          g.Kind.String(),
		Categories:    g.Categories.Strings(),
		Players:       g.Players,
		Started:       g.Started,
		HostID:        g.HostID,
		InviteCode:    g.InviteCode,
		CurrentPlayer: g.CurrentPlayer,
		MaxRounds:     g.MaxRounds,
		MaxPlayers:    g.MaxPlayers,
		MovesDone:     g.MovesDone,
		SavedAt:       time.Now().Unix(),
	}
	if err := s.store.SaveGame(ctx, data); err != nil {
		log.Printf("保存游戏快照失败: %v", err)
	}
}
