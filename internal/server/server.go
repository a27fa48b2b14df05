package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/xauspro/truth-or-dare/internal/config"
	"github.com/xauspro/truth-or-dare/internal/game"
	"github.com/xauspro/truth-or-dare/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
	EnableCompression: false,
}

// Server WebSocket 服务器
type Server struct {
	config  *config.Config
	redis   *redis.Client
	db      *sql.DB
	store   *storage.RedisStore
	users   *storage.UserStore
	content *storage.ContentStore
	engine  *game.Engine
	handler *Handler

	clients   map[string]*Client // 按连接 ID
	byUser    map[int64]*Client  // 按已认证用户 ID
	clientsMu sync.RWMutex
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	// 初始化 Redis 客户端
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 测试 Redis 连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	// 初始化 SQLite
	db, err := storage.OpenDB(cfg.DB.Path)
	if err != nil {
		return nil, err
	}

	content, err := storage.NewContentStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Server{
		config:  cfg,
		redis:   rdb,
		db:      db,
		store:   storage.NewRedisStore(rdb),
		users:   storage.NewUserStore(db),
		content: content,
		engine:  game.NewEngine(content),
		clients: make(map[string]*Client),
		byUser:  make(map[int64]*Client),
	}
	s.handler = NewHandler(s)

	return s, nil
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/health", s.handleHealth)

	log.Printf("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	server := &http.Server{
		Addr:              addr,
		Handler:           nil,
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return server.ListenAndServe()
}

// Close 释放底层资源
func (s *Server) Close() error {
	if err := s.redis.Close(); err != nil {
		return err
	}
	return s.db.Close()
}

// Engine 返回游戏引擎（供测试与客户端查询使用）
func (s *Server) Engine() *game.Engine {
	return s.engine
}
