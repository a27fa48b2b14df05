package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// User 用户资料与统计
type User struct {
	ID           int64
	Name         string
	Gender       string // male / female，空表示未设置
	Age          int    // 0 表示未设置
	IsPremium    bool
	SearchGender string // 匹配偏好：male / female / any
	SearchAgeMin int
	SearchAgeMax int
	Categories   []string // 任务类别，空用默认
	GamesPlayed  int
	TasksDone    int
}

// UserStore SQLite 用户存储
type UserStore struct {
	db *sql.DB
}

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id             INTEGER PRIMARY KEY,
	name           TEXT NOT NULL DEFAULT '',
	gender         TEXT NOT NULL DEFAULT '',
	age            INTEGER NOT NULL DEFAULT 0,
	is_premium     INTEGER NOT NULL DEFAULT 0,
	search_gender  TEXT NOT NULL DEFAULT '',
	search_age_min INTEGER NOT NULL DEFAULT 0,
	search_age_max INTEGER NOT NULL DEFAULT 0,
	categories     TEXT NOT NULL DEFAULT '[]',
	games_played   INTEGER NOT NULL DEFAULT 0,
	tasks_done     INTEGER NOT NULL DEFAULT 0
);
`

// OpenDB 打开 SQLite 数据库并建表。
// WAL + busy_timeout 以支持并发读。
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	if _, err := db.Exec(usersSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("初始化 users 表失败: %w", err)
	}
	if _, err := db.Exec(tasksSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("初始化 tasks 表失败: %w", err)
	}
	return db, nil
}

// NewUserStore 创建用户存储
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// UpsertUser 注册或更新用户昵称，返回最新资料
func (s *UserStore) UpsertUser(ctx context.Context, id int64, name string) (*User, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		id, name)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// GetUser 查询用户，不存在返回 nil
func (s *UserStore) GetUser(ctx context.Context, id int64) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, gender, age, is_premium,
		       search_gender, search_age_min, search_age_max,
		       categories, games_played, tasks_done
		FROM users WHERE id = ?`, id)

	var u User
	var categories string
	err := row.Scan(&u.ID, &u.Name, &u.Gender, &u.Age, &u.IsPremium,
		&u.SearchGender, &u.SearchAgeMin, &u.SearchAgeMax,
		&categories, &u.GamesPlayed, &u.TasksDone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(categories), &u.Categories); err != nil {
		return nil, fmt.Errorf("解析类别失败: %w", err)
	}
	return &u, nil
}

// SetProfile 设置性别与年龄
func (s *UserStore) SetProfile(ctx context.Context, id int64, gender string, age int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET gender = ?, age = ? WHERE id = ?`, gender, age, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// SetSearchPrefs 设置匹配偏好
func (s *UserStore) SetSearchPrefs(ctx context.Context, id int64, gender string, ageMin, ageMax int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET search_gender = ?, search_age_min = ?, search_age_max = ? WHERE id = ?`,
		gender, ageMin, ageMax, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// SetCategories 设置任务类别
func (s *UserStore) SetCategories(ctx context.Context, id int64, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET categories = ? WHERE id = ?`, string(data), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// SetPremium 设置会员标记
func (s *UserStore) SetPremium(ctx context.Context, id int64, premium bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET is_premium = ? WHERE id = ?`, premium, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// IncrGamesPlayed 累加完成游戏计数
func (s *UserStore) IncrGamesPlayed(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE users SET games_played = games_played + 1 WHERE id = ?`, id); err != nil {
			return err
		}
	}
	return nil
}

// IncrTasksDone 累加完成任务计数
func (s *UserStore) IncrTasksDone(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET tasks_done = tasks_done + 1 WHERE id = ?`, id)
	return err
}

var errUserNotFound = errors.New("用户不存在")

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errUserNotFound
	}
	return nil
}

// IsNotFound 判断是否为用户不存在错误
func IsNotFound(err error) bool {
	return errors.Is(err, errUserNotFound)
}
