package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgAuth MessageType = "auth" // 登录认证
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom   MessageType = "create_room"   // 创建好友房间
	MsgJoinRoom     MessageType = "join_room"     // 凭邀请码加入房间
	MsgStartRoom    MessageType = "start_room"    // 房主开始游戏
	MsgFindRandom   MessageType = "find_random"   // 随机匹配
	MsgCancelSearch MessageType = "cancel_search" // 取消匹配
	MsgEndGame      MessageType = "end_game"      // 主动结束游戏

	// 游戏操作
	MsgGetTask  MessageType = "get_task"  // 抽取真心话/大冒险
	MsgTaskDone MessageType = "task_done" // 完成任务，轮到下一位

	// 个人资料
	MsgGetStats       MessageType = "get_stats"        // 获取个人统计
	MsgSetProfile     MessageType = "set_profile"      // 设置性别/年龄
	MsgSetCategories  MessageType = "set_categories"   // 设置任务类别
	MsgSetSearchPrefs MessageType = "set_search_prefs" // 设置匹配偏好
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgAuthed MessageType = "authed" // 认证成功
	MsgPong   MessageType = "pong"   // 心跳 pong

	// 房间相关
	MsgRoomCreated     MessageType = "room_created"     // 房间创建成功
	MsgRoomJoined      MessageType = "room_joined"      // 加入房间成功
	MsgPlayerJoined    MessageType = "player_joined"    // 其他玩家加入
	MsgMatchFound      MessageType = "match_found"      // 匹配成功
	MsgSearching       MessageType = "searching"        // 已进入匹配队列
	MsgSearchCancelled MessageType = "search_cancelled" // 匹配已取消

	// 游戏流程
	MsgGameStart MessageType = "game_start" // 游戏开始
	MsgTask      MessageType = "task"       // 任务下发
	MsgTurn      MessageType = "turn"       // 轮到某玩家
	MsgGameOver  MessageType = "game_over"  // 游戏结束

	// 个人资料
	MsgStatsResult  MessageType = "stats_result"  // 个人统计结果
	MsgProfileSaved MessageType = "profile_saved" // 资料保存成功

	// 错误
	MsgError MessageType = "error" // 错误消息
)
