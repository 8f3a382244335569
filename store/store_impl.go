package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/afumu/chatwrapped/internal/model"
	"github.com/afumu/chatwrapped/store/core"
	"github.com/afumu/chatwrapped/store/types"
	"github.com/fsnotify/fsnotify"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// messageDBName 标准化消息库的文件名, 由同步工具写入数据目录。
const messageDBName = "messages.db"

// DefaultStore 基于 SQLite 的 Store 实现。
// 数据目录下出现新的 .db 文件时自动重载。
type DefaultStore struct {
	dataDir string
	watcher *core.Watcher

	mu sync.RWMutex
	db *sql.DB
}

// NewStore 打开数据目录下的消息库并启动目录监控。
func NewStore(dataDir string) (Store, error) {
	s := &DefaultStore{dataDir: dataDir}
	if err := s.open(); err != nil {
		return nil, err
	}

	watcher, err := core.NewWatcher(dataDir)
	if err != nil {
		return nil, err
	}
	watcher.AddCallback(func(event fsnotify.Event) {
		if event.Op&fsnotify.Create == fsnotify.Create && strings.HasSuffix(event.Name, ".db") {
			log.Info().Str("file", event.Name).Msg("检测到新数据库文件, 重新加载")
			if err := s.Reload(); err != nil {
				log.Error().Err(err).Msg("重新加载失败")
			}
		}
	})
	watcher.Start()
	s.watcher = watcher

	return s, nil
}

func (s *DefaultStore) open() error {
	path := filepath.Join(s.dataDir, messageDBName)
	db, err := sql.Open("sqlite3", path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("打开消息库 %s 失败: %w", path, err)
	}

	s.mu.Lock()
	old := s.db
	s.db = db
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

func (s *DefaultStore) conn() *sql.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// GetMessages 读取消息并映射为标准化记录, 按时间升序。
func (s *DefaultStore) GetMessages(ctx context.Context, q types.MessageQuery) ([]model.MessageRecord, error) {
	query := "SELECT contact_id, is_from_me, create_time, COALESCE(content, ''), has_attachment FROM messages WHERE 1=1"
	var args []interface{}

	if !q.StartTime.IsZero() {
		query += " AND create_time >= ?"
		args = append(args, q.StartTime.Unix())
	}
	if !q.EndTime.IsZero() {
		query += " AND create_time <= ?"
		args = append(args, q.EndTime.Unix())
	}
	if q.ContactID != "" {
		query += " AND contact_id = ?"
		args = append(args, q.ContactID)
	}
	query += " ORDER BY create_time ASC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询消息失败: %w", err)
	}
	defer rows.Close()

	var records []model.MessageRecord
	for rows.Next() {
		var (
			contactID     string
			isFromMe      int
			createTime    int64
			content       string
			hasAttachment int
		)
		if err := rows.Scan(&contactID, &isFromMe, &createTime, &content, &hasAttachment); err != nil {
			return nil, err
		}
		records = append(records, model.MessageRecord{
			ContactID:     contactID,
			IsFromMe:      isFromMe == 1,
			Timestamp:     time.Unix(createTime, 0),
			Text:          content,
			HasAttachment: hasAttachment == 1,
		})
	}
	return records, rows.Err()
}

// GetContactIDs 返回全部联系人ID, 字典序。
func (s *DefaultStore) GetContactIDs(ctx context.Context) ([]string, error) {
	rows, err := s.conn().QueryContext(ctx, "SELECT DISTINCT contact_id FROM messages ORDER BY contact_id ASC")
	if err != nil {
		return nil, fmt.Errorf("查询联系人失败: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Watch 注册数据目录事件回调。
func (s *DefaultStore) Watch(callback func(event fsnotify.Event) error) error {
	s.watcher.AddCallback(func(event fsnotify.Event) {
		if err := callback(event); err != nil {
			log.Warn().Err(err).Str("file", event.Name).Msg("Watch 回调返回错误")
		}
	})
	return nil
}

// Reload 重新打开消息库。
func (s *DefaultStore) Reload() error {
	return s.open()
}

// Close 关闭连接与 watcher。
func (s *DefaultStore) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
