package ui

import (
	"github.com/xauspro/truth-or-dare/internal/protocol"
)

// GamePhase 客户端当前所处的界面阶段
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseAuth
	PhaseLobby
	PhaseRoom
	PhaseMatching
	PhasePlaying
	PhaseGameOver
	PhaseStats
	PhaseProfile
	PhaseCategories
)

// --- tea.Msg types ---

// ConnectedMsg 连接成功
type ConnectedMsg struct{}

// ConnectionErrorMsg 连接失败或断开
type ConnectionErrorMsg struct {
	Err error
}

// ServerMessage 来自服务器的消息
type ServerMessage struct {
	Msg *protocol.Message
}

// ClearErrorMsg 清除错误提示
type ClearErrorMsg struct{}

// matchTickMsg 匹配等待界面的秒级刷新
type matchTickMsg struct{}
