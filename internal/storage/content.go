package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/xauspro/truth-or-dare/internal/game"
)

const tasksSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	category TEXT NOT NULL,
	kind     TEXT NOT NULL,
	text     TEXT NOT NULL,
	UNIQUE(category, kind, text)
);
CREATE INDEX IF NOT EXISTS idx_tasks_category_kind ON tasks(category, kind);
`

type poolKey struct {
	category game.Category
	kind     game.TaskKind
}

// ContentStore 任务内容存储。
// 启动时全量加载到内存，抽题走内存，写入同步落库。
type ContentStore struct {
	db *sql.DB

	mu    sync.RWMutex
	pools map[poolKey][]string
}

// NewContentStore 创建内容存储，表为空时写入内置题库
func NewContentStore(ctx context.Context, db *sql.DB) (*ContentStore, error) {
	s := &ContentStore{
		db:    db,
		pools: make(map[poolKey][]string),
	}

	if err := s.seedIfEmpty(ctx); err != nil {
		return nil, err
	}
	if err := s.loadAll(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Tasks 返回指定类别与类型的任务池
func (s *ContentStore) Tasks(category game.Category, kind game.TaskKind) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pools[poolKey{category, kind}]
}

// AddTask 新增一条任务，去重后同时更新内存池
func (s *ContentStore) AddTask(ctx context.Context, category game.Category, kind game.TaskKind, text string) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO tasks (category, kind, text) VALUES (?, ?, ?)`,
		string(category), string(kind), text)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return nil // 已存在
	}

	s.mu.Lock()
	key := poolKey{category, kind}
	s.pools[key] = append(s.pools[key], text)
	s.mu.Unlock()
	return nil
}

// Count 返回任务总数
func (s *ContentStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

func (s *ContentStore) loadAll(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT category, kind, text FROM tasks ORDER BY id`)
	if err != nil {
		return fmt.Errorf("加载题库失败: %w", err)
	}
	defer rows.Close()

	pools := make(map[poolKey][]string)
	for rows.Next() {
		var category, kind, text string
		if err := rows.Scan(&category, &kind, &text); err != nil {
			return err
		}
		key := poolKey{game.Category(category), game.TaskKind(kind)}
		pools[key] = append(pools[key], text)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.pools = pools
	s.mu.Unlock()
	return nil
}

func (s *ContentStore) seedIfEmpty(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO tasks (category, kind, text) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, texts := range seedTasks {
		for _, text := range texts {
			if _, err := stmt.ExecContext(ctx, string(key.category), string(key.kind), text); err != nil {
				return fmt.Errorf("写入内置题库失败: %w", err)
			}
		}
	}
	return tx.Commit()
}
