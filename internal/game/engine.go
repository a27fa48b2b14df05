package game

import (
	"math/rand/v2"
	"sync"
	"time"
)

// TaskSource 按类别提供任务文本（由内容库协作方实现）。
// 引擎在持锁状态下调用，实现必须是非阻塞的纯查询。
type TaskSource interface {
	Tasks(category Category, kind TaskKind) []string
}

// Engine 游戏引擎：所有活跃游戏、玩家索引、邀请码表和匹配等待池
// 的唯一权威。四张表由同一把锁保护，跨表操作对外表现为原子的。
type Engine struct {
	mu         sync.Mutex
	games      map[int64]*GameState
	playerGame map[int64]int64 // 玩家 -> 游戏（每个玩家至多一局）
	inviteGame map[string]int64
	waiting    []*MatchRequest
	nextID     int64  // 游戏 ID 自增计数器，删除后不复用
	nextSeq    uint64 // 匹配请求入队序号
	rng        *rand.Rand
	tasks      TaskSource
}

// Option 引擎可选配置
type Option func(*Engine)

// WithRand 注入随机源（测试中用固定种子保证可复现）
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// NewEngine 创建游戏引擎
func NewEngine(tasks TaskSource, opts ...Option) *Engine {
	e := &Engine{
		games:      make(map[int64]*GameState),
		playerGame: make(map[int64]int64),
		inviteGame: make(map[string]int64),
		nextID:     1,
		tasks:      tasks,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		now := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(now, now>>32))
	}
	return e
}

// GetGame 按 ID 查询游戏，返回副本
func (e *Engine) GetGame(gameID int64) *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	if g, ok := e.games[gameID]; ok {
		return g.clone()
	}
	return nil
}

// GetGameForPlayer 查询玩家当前所在的游戏，返回副本
func (e *Engine) GetGameForPlayer(playerID int64) *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()

	if g := e.gameForPlayerLocked(playerID); g != nil {
		return g.clone()
	}
	return nil
}

// ActiveGames 当前活跃游戏数
func (e *Engine) ActiveGames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.games)
}

// WaitingCount 匹配等待池长度
func (e *Engine) WaitingCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.waiting)
}

// IsWaiting 玩家是否在匹配等待池中
func (e *Engine) IsWaiting(playerID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, w := range e.waiting {
		if w.PlayerID == playerID {
			return true
		}
	}
	return false
}

// gameForPlayerLocked 持锁查找玩家的游戏
func (e *Engine) gameForPlayerLocked(playerID int64) *GameState {
	gameID, ok := e.playerGame[playerID]
	if !ok {
		return nil
	}
	return e.games[gameID]
}

// allocGameIDLocked 分配游戏 ID
func (e *Engine) allocGameIDLocked() int64 {
	id := e.nextID
	e.nextID++
	return id
}

// generateInviteCodeLocked 生成未被占用的邀请码。
// 字符集为 32，冲突概率可忽略，但重试循环保证唯一性而非仅靠概率。
func (e *Engine) generateInviteCodeLocked() string {
	for {
		code := make([]byte, inviteCodeLength)
		for i := range code {
			code[i] = inviteCodeAlphabet[e.rng.IntN(len(inviteCodeAlphabet))]
		}
		if _, exists := e.inviteGame[string(code)]; !exists {
			return string(code)
		}
	}
}
