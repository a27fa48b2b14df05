package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// 默认值
const (
	defaultHost      = "0.0.0.0"
	defaultPort      = 1780
	defaultRedisAddr = "localhost:6379"
	defaultDBPath    = "truth_or_dare.db"

	defaultMaxRounds       = 10
	defaultMaxPlayers      = 10
	defaultFreeSearches    = 3  // 每日免费匹配次数
	defaultSearchWindowHrs = 24 // 匹配计数窗口（小时）
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	DB     DBConfig     `yaml:"db"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DBConfig SQLite 配置
type DBConfig struct {
	Path string `yaml:"path"`
}

// GameConfig 游戏配置
type GameConfig struct {
	MaxRounds          int `yaml:"max_rounds"`            // 默认回合上限
	MaxPlayers         int `yaml:"max_players"`           // 好友房间人数上限
	FreeSearchesPerDay int `yaml:"free_searches_per_day"` // 每日免费匹配次数
	SearchWindowHours  int `yaml:"search_window_hours"`   // 匹配计数窗口（小时）
}

// SearchWindow 返回匹配计数窗口时长
func (c *GameConfig) SearchWindow() time.Duration {
	return time.Duration(c.SearchWindowHours) * time.Hour
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	applyEnv(cfg)
	return cfg
}

// applyDefaults 补全缺省字段
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = defaultRedisAddr
	}
	if cfg.DB.Path == "" {
		cfg.DB.Path = defaultDBPath
	}
	if cfg.Game.MaxRounds == 0 {
		cfg.Game.MaxRounds = defaultMaxRounds
	}
	if cfg.Game.MaxPlayers == 0 {
		cfg.Game.MaxPlayers = defaultMaxPlayers
	}
	if cfg.Game.FreeSearchesPerDay == 0 {
		cfg.Game.FreeSearchesPerDay = defaultFreeSearches
	}
	if cfg.Game.SearchWindowHours == 0 {
		cfg.Game.SearchWindowHours = defaultSearchWindowHrs
	}
}

// applyEnv 环境变量覆盖，便于容器部署
func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DB.Path = v
	}
	if v := os.Getenv("GAME_FREE_SEARCHES_PER_DAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Game.FreeSearchesPerDay = n
		}
	}
}
