package apperrors

import (
	"github.com/xauspro/truth-or-dare/internal/protocol"
)

// GameError 游戏错误（房间和匹配共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound    = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "该邀请码对应的房间不存在"}
	ErrRoomFull        = &GameError{Code: protocol.ErrCodeRoomFull, Message: "房间已满"}
	ErrNotInGame       = &GameError{Code: protocol.ErrCodeNotInGame, Message: "您不在游戏中"}
	ErrGameStarted     = &GameError{Code: protocol.ErrCodeGameStarted, Message: "游戏已开始"}
	ErrGameNotStart    = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "游戏尚未开始"}
	ErrNotHost         = &GameError{Code: protocol.ErrCodeNotHost, Message: "只有房主可以开始游戏"}
	ErrNotEnoughPlayer = &GameError{Code: protocol.ErrCodeNotEnoughPlayer, Message: "至少需要 2 名玩家才能开始"}
	ErrNotYourTurn     = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrSearchLimit     = &GameError{Code: protocol.ErrCodeSearchLimit, Message: "今日免费匹配次数已用完"}
	ErrAlreadyInGame   = &GameError{Code: protocol.ErrCodeAlreadyInGame, Message: "您已经在一局游戏中"}
)
