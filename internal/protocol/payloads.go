package protocol

// --- 客户端请求 Payloads ---

// AuthPayload 登录认证请求
type AuthPayload struct {
	UserID int64  `json:"user_id"` // 用户唯一 ID
	Name   string `json:"name"`    // 昵称
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建好友房间请求
type CreateRoomPayload struct {
	Categories []string `json:"categories,omitempty"`  // 任务类别，空则用默认
	MaxRounds  int      `json:"max_rounds,omitempty"`  // 回合上限，0 用默认
	MaxPlayers int      `json:"max_players,omitempty"` // 人数上限，0 用默认
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	InviteCode string `json:"invite_code"`
}

// GetTaskPayload 抽取任务请求
type GetTaskPayload struct {
	Kind string `json:"kind"` // truth / dare
}

// SetProfilePayload 设置个人资料请求
type SetProfilePayload struct {
	Gender string `json:"gender"` // male / female
	Age    int    `json:"age"`
}

// SetCategoriesPayload 设置任务类别请求
type SetCategoriesPayload struct {
	Categories []string `json:"categories"`
}

// SetSearchPrefsPayload 设置匹配偏好请求
type SetSearchPrefsPayload struct {
	Gender string `json:"gender,omitempty"` // male / female / any
	AgeMin int    `json:"age_min,omitempty"`
	AgeMax int    `json:"age_max,omitempty"`
}

// --- 服务端响应 Payloads ---

// AuthedPayload 认证成功响应
type AuthedPayload struct {
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	IsPremium bool   `json:"is_premium"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	GameID     int64    `json:"game_id"`
	InviteCode string   `json:"invite_code"`
	Categories []string `json:"categories"`
	MaxRounds  int      `json:"max_rounds"`
	MaxPlayers int      `json:"max_players"`
}

// RoomJoinedPayload 加入房间成功响应
type RoomJoinedPayload struct {
	GameID     int64        `json:"game_id"`
	InviteCode string       `json:"invite_code"`
	Players    []PlayerInfo `json:"players"` // 房间内所有玩家，按加入顺序
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// SearchingPayload 已进入匹配队列通知
type SearchingPayload struct {
	Waiting int `json:"waiting"` // 当前队列人数
}

// MatchFoundPayload 匹配成功通知
type MatchFoundPayload struct {
	GameID        int64      `json:"game_id"`
	Opponent      PlayerInfo `json:"opponent"`
	Categories    []string   `json:"categories"` // 双方类别的交集
	CurrentPlayer int64      `json:"current_player"`
}

// GameStartPayload 游戏开始通知
type GameStartPayload struct {
	GameID        int64        `json:"game_id"`
	Players       []PlayerInfo `json:"players"` // 按加入顺序排列
	CurrentPlayer int64        `json:"current_player"`
	MaxRounds     int          `json:"max_rounds"`
}

// TaskPayload 任务下发通知
type TaskPayload struct {
	Kind string `json:"kind"` // truth / dare
	Text string `json:"text"`
}

// TurnPayload 轮到某玩家通知
type TurnPayload struct {
	PlayerID  int64 `json:"player_id"`
	Round     int   `json:"round"` // 已完成回合数
	MaxRounds int   `json:"max_rounds"`
}

// GameOverPayload 游戏结束通知
type GameOverPayload struct {
	GameID int64 `json:"game_id"`
	Rounds int   `json:"rounds"` // 实际进行的回合数
}

// StatsResultPayload 个人统计结果
type StatsResultPayload struct {
	UserID        int64    `json:"user_id"`
	Name          string   `json:"name"`
	GamesPlayed   int      `json:"games_played"`
	TasksDone     int      `json:"tasks_done"`
	SearchesToday int      `json:"searches_today"`
	IsPremium     bool     `json:"is_premium"`
	Categories    []string `json:"categories"`
}

// ProfileSavedPayload 资料保存成功响应
type ProfileSavedPayload struct {
	Gender     string   `json:"gender,omitempty"`
	Age        int      `json:"age,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 通用数据结构 ---

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"is_host"`
}
