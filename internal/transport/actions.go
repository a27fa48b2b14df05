package transport

import (
	"time"

	"github.com/xauspro/truth-or-dare/internal/protocol"
)

// --- 便捷方法 ---

// Auth 登录认证
func (c *Client) Auth(userID int64, name string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgAuth, protocol.AuthPayload{
		UserID: userID,
		Name:   name,
	}))
}

// CreateRoom 创建好友房间
func (c *Client) CreateRoom(categories []string, maxRounds, maxPlayers int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{
		Categories: categories,
		MaxRounds:  maxRounds,
		MaxPlayers: maxPlayers,
	}))
}

// JoinRoom 凭邀请码加入房间
func (c *Client) JoinRoom(inviteCode string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
		InviteCode: inviteCode,
	}))
}

// StartRoom 房主开始游戏
func (c *Client) StartRoom() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgStartRoom, nil))
}

// FindRandom 随机匹配
func (c *Client) FindRandom() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgFindRandom, nil))
}

// CancelSearch 取消匹配
func (c *Client) CancelSearch() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgCancelSearch, nil))
}

// EndGame 主动结束游戏
func (c *Client) EndGame() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgEndGame, nil))
}

// GetTask 抽取任务（kind 为 truth 或 dare）
func (c *Client) GetTask(kind string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGetTask, protocol.GetTaskPayload{
		Kind: kind,
	}))
}

// TaskDone 完成当前任务
func (c *Client) TaskDone() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgTaskDone, nil))
}

// GetStats 获取个人统计
func (c *Client) GetStats() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGetStats, nil))
}

// SetProfile 设置性别与年龄
func (c *Client) SetProfile(gender string, age int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgSetProfile, protocol.SetProfilePayload{
		Gender: gender,
		Age:    age,
	}))
}

// SetCategories 设置任务类别
func (c *Client) SetCategories(categories []string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgSetCategories, protocol.SetCategoriesPayload{
		Categories: categories,
	}))
}

// SetSearchPrefs 设置匹配偏好
func (c *Client) SetSearchPrefs(gender string, ageMin, ageMax int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgSetSearchPrefs, protocol.SetSearchPrefsPayload{
		Gender: gender,
		AgeMin: ageMin,
		AgeMax: ageMax,
	}))
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
