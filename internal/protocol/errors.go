package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeNotAuthed  = 1002 // 未登录

	ErrCodeRoomNotFound    = 2001
	ErrCodeRoomFull        = 2002
	ErrCodeNotInGame       = 2003
	ErrCodeGameStarted     = 2004 // 游戏已开始
	ErrCodeNotHost         = 2005 // 不是房主
	ErrCodeNotEnoughPlayer = 2006 // 人数不足

	ErrCodeGameNotStart = 3001
	ErrCodeNotYourTurn  = 3002
	ErrCodeNoTasks      = 3003 // 任务池为空

	ErrCodeSearchLimit     = 4001 // 今日免费匹配次数已用完
	ErrCodeAlreadyInGame   = 4002 // 已在游戏中
	ErrCodeInvalidProfile  = 4003 // 资料不合法
	ErrCodeInvalidCategory = 4004 // 类别不合法
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:    "未知错误",
	ErrCodeInvalidMsg: "无效的消息格式",
	ErrCodeNotAuthed:  "请先登录",

	ErrCodeRoomNotFound:    "该邀请码对应的房间不存在",
	ErrCodeRoomFull:        "房间已满",
	ErrCodeNotInGame:       "您不在游戏中",
	ErrCodeGameStarted:     "游戏已开始",
	ErrCodeNotHost:         "只有房主可以开始游戏",
	ErrCodeNotEnoughPlayer: "至少需要 2 名玩家才能开始",

	ErrCodeGameNotStart: "游戏尚未开始",
	ErrCodeNotYourTurn:  "还没轮到您",
	ErrCodeNoTasks:      "该类别暂时还没有任务",

	ErrCodeSearchLimit:     "今日免费匹配次数已用完",
	ErrCodeAlreadyInGame:   "您已经在一局游戏中",
	ErrCodeInvalidProfile:  "资料不合法",
	ErrCodeInvalidCategory: "类别不合法",
}
