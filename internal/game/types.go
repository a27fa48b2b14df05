package game

// GameKind 游戏类型
type GameKind int

const (
	KindFriend GameKind = iota // 好友房（邀请码进入）
	KindRandom                 // 随机匹配
)

func (k GameKind) String() string {
	switch k {
	case KindFriend:
		return "friend"
	case KindRandom:
		return "random"
	default:
		return "unknown"
	}
}

// TaskKind 任务类型
type TaskKind string

const (
	TaskTruth TaskKind = "truth" // 真心话
	TaskDare  TaskKind = "dare"  // 大冒险
)

// FailReason 操作失败的结构化原因。引擎返回给调用方的文案可能随
// 措辞调整，传输层映射错误码只依赖本类型。
type FailReason int

const (
	FailNone             FailReason = iota
	FailGameNotFound                // 游戏或邀请码不存在
	FailAlreadyJoined               // 玩家已在这局游戏中
	FailRoomFull                    // 房间人数已达上限
	FailNotHost                     // 请求者不是房主
	FailAlreadyStarted              // 游戏已经开始
	FailNotEnoughPlayers            // 玩家不足，无法开始
	FailNoTasks                     // 类别任务池为空
)

// Gender 性别标签（空字符串表示未设置）
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderAny    Gender = "any" // 仅用于搜索偏好，表示不限
)

const (
	// 游戏默认参数
	DefaultMaxRounds  = 10
	DefaultMaxPlayers = 10
	MinPlayers        = 2

	// 邀请码长度与字符集（去掉易混淆的 I O 0 1）
	inviteCodeLength   = 6
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GameState 一局游戏的权威状态。
// 引擎内部持有唯一实例，对外只返回副本。
type GameState struct {
	ID         int64
	Kind       GameKind
	Categories CategorySet
	Players    []int64 // 按加入顺序，元素唯一
	Started    bool
	HostID     int64  // 仅好友房：创建者，拥有房间管理权限
	InviteCode string // 仅好友房
	// CurrentPlayer 当前回合的玩家，0 表示尚未分配。
	// 一旦分配，必须始终是 Players 的成员。
	CurrentPlayer int64
	MaxRounds     int
	MaxPlayers    int
	MovesDone     int // 已完成的回合数，单调递增
}

// HasPlayer 玩家是否在本局游戏中
func (g *GameState) HasPlayer(playerID int64) bool {
	for _, p := range g.Players {
		if p == playerID {
			return true
		}
	}
	return false
}

// clone 返回深拷贝，避免调用方持有引擎内部状态
func (g *GameState) clone() *GameState {
	c := *g
	c.Players = append([]int64(nil), g.Players...)
	c.Categories = append(CategorySet(nil), g.Categories...)
	return &c
}

// SearchPrefs 随机匹配的搜索偏好
type SearchPrefs struct {
	Gender Gender // 期望的对手性别，空或 GenderAny 表示不限
	AgeMin int    // 0 表示不限
	AgeMax int    // 0 表示不限
}

// wantsGender 偏好是否限定性别
func (p SearchPrefs) wantsGender() bool {
	return p.Gender != "" && p.Gender != GenderAny
}

// MatchRequest 等待池中的一条匹配请求
type MatchRequest struct {
	PlayerID   int64
	Categories CategorySet
	Prefs      SearchPrefs
	Gender     Gender // 请求者自己的属性（可为空）
	Age        int    // 0 表示未填写
	IsPremium  bool

	seq uint64 // 入队序号，同等级先到先得
}
