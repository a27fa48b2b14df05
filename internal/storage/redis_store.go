package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xauspro/truth-or-dare/internal/protocol/codec"
)

const (
	// Redis key 前缀
	gameKeyPrefix   = "game:"
	searchKeyPrefix = "search:"

	// 游戏快照过期时间
	gameExpiration = 2 * time.Hour
)

// GameData 游戏快照（用于 Redis 序列化）
type GameData struct {
	ID            int64    `json:"id"`
	Kind          string   `json:"kind"`
	Categories    []string `json:"categories"`
	Players       []int64  `json:"players"`
	Started       bool     `json:"started"`
	HostID        int64    `json:"host_id,omitempty"`
	InviteCode    string   `json:"invite_code,omitempty"`
	CurrentPlayer int64    `json:"current_player,omitempty"`
	MaxRounds     int      `json:"max_rounds"`
	MaxPlayers    int      `json:"max_players"`
	MovesDone     int      `json:"moves_done"`
	SavedAt       int64    `json:"saved_at"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// --- 游戏快照 ---

// SaveGame 保存游戏快照到 Redis
func (rs *RedisStore) SaveGame(ctx context.Context, data *GameData) error {
	if data == nil {
		return nil
	}

	buf := codec.GetBuffer()
	defer codec.PutBuffer(buf)

	if err := json.NewEncoder(buf).Encode(data); err != nil {
		return fmt.Errorf("序列化游戏数据失败: %w", err)
	}

	key := gameKeyPrefix + strconv.FormatInt(data.ID, 10)
	return rs.client.Set(ctx, key, buf.Bytes(), gameExpiration).Err()
}

// LoadGame 从 Redis 加载游戏快照
func (rs *RedisStore) LoadGame(ctx context.Context, gameID int64) (*GameData, error) {
	key := gameKeyPrefix + strconv.FormatInt(gameID, 10)
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 游戏不存在
		}
		return nil, err
	}

	var gameData GameData
	if err := json.Unmarshal(data, &gameData); err != nil {
		return nil, fmt.Errorf("反序列化游戏数据失败: %w", err)
	}

	return &gameData, nil
}

// DeleteGame 从 Redis 删除游戏快照
func (rs *RedisStore) DeleteGame(ctx context.Context, gameID int64) error {
	key := gameKeyPrefix + strconv.FormatInt(gameID, 10)
	return rs.client.Del(ctx, key).Err()
}

// --- 每日匹配计数 ---

// IncrSearchCount 递增用户当日匹配计数，返回递增后的值。
// 首次递增时设置窗口过期，窗口内的后续调用不会续期。
func (rs *RedisStore) IncrSearchCount(ctx context.Context, userID int64, window time.Duration) (int64, error) {
	key := searchKeyPrefix + strconv.FormatInt(userID, 10)

	count, err := rs.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := rs.client.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// SearchCount 查询用户当日匹配计数
func (rs *RedisStore) SearchCount(ctx context.Context, userID int64) (int64, error) {
	key := searchKeyPrefix + strconv.FormatInt(userID, 10)

	val, err := rs.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

// DecrSearchCount 回退一次匹配计数（取消匹配时返还额度）
func (rs *RedisStore) DecrSearchCount(ctx context.Context, userID int64) error {
	key := searchKeyPrefix + strconv.FormatInt(userID, 10)

	count, err := rs.client.Decr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count <= 0 {
		return rs.client.Del(ctx, key).Err()
	}
	return nil
}
