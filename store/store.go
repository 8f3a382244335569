package store

import (
	"context"

	"github.com/afumu/chatwrapped/internal/model"
	"github.com/afumu/chatwrapped/store/types"
	"github.com/fsnotify/fsnotify"
)

// Store 定义了消息数据访问的统一接口。
// 它屏蔽底层文件结构, 引擎只消费标准化的 MessageRecord。
type Store interface {
	// GetMessages 按条件读取消息, 按时间升序返回。
	GetMessages(ctx context.Context, query types.MessageQuery) ([]model.MessageRecord, error)

	// GetContactIDs 返回出现过的全部联系人ID, 字典序。
	GetContactIDs(ctx context.Context) ([]string, error)

	// Watch 注册数据目录文件事件的回调。
	Watch(callback func(event fsnotify.Event) error) error

	// Reload 重新加载存储 (新数据库文件同步进来之后)。
	Reload() error

	// Close 释放连接与 watcher。
	Close() error
}
