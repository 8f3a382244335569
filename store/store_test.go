package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/afumu/chatwrapped/store/types"
	_ "github.com/mattn/go-sqlite3"
)

// createTestDB 在目录下写入一个带样本数据的消息库。
func createTestDB(t *testing.T, dir string) {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(dir, messageDBName))
	if err != nil {
		t.Fatalf("创建测试数据库失败: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE messages (
		contact_id TEXT NOT NULL,
		is_from_me INTEGER NOT NULL,
		create_time INTEGER NOT NULL,
		content TEXT,
		has_attachment INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Unix()
	rows := []struct {
		contact string
		fromMe  int
		offset  int64
		content interface{}
		attach  int
	}{
		{"alice", 1, 0, "hey", 0},
		{"alice", 0, 60, "hi 😂", 0},
		{"bob", 1, 120, nil, 1}, // 纯附件消息, content 为 NULL
		{"alice", 1, 7200, "later", 0},
	}
	for _, r := range rows {
		_, err := db.Exec(
			"INSERT INTO messages (contact_id, is_from_me, create_time, content, has_attachment) VALUES (?, ?, ?, ?, ?)",
			r.contact, r.fromMe, base+r.offset, r.content, r.attach,
		)
		if err != nil {
			t.Fatalf("插入测试数据失败: %v", err)
		}
	}
}

func newTestStore(t *testing.T) Store {
	t.Helper()
	dir := t.TempDir()
	createTestDB(t, dir)

	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("初始化 store 失败: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMessages_All(t *testing.T) {
	s := newTestStore(t)

	msgs, err := s.GetMessages(context.Background(), types.MessageQuery{})
	if err != nil {
		t.Fatalf("查询消息失败: %v", err)
	}
	if len(msgs) != 4 {
		t.Fatalf("期望 4 条消息, 实际得到 %d", len(msgs))
	}

	// 时间升序
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Timestamp.Before(msgs[i-1].Timestamp) {
			t.Errorf("消息必须按时间升序返回")
		}
	}

	// 字段映射
	if msgs[0].ContactID != "alice" || !msgs[0].IsFromMe || msgs[0].Text != "hey" {
		t.Errorf("首条消息映射不正确: %+v", msgs[0])
	}
	// NULL content 映射为空串, 附件标志保留
	if msgs[2].Text != "" || !msgs[2].HasAttachment {
		t.Errorf("附件消息映射不正确: %+v", msgs[2])
	}
}

func TestGetMessages_TimeWindow(t *testing.T) {
	s := newTestStore(t)

	start := time.Date(2024, 6, 1, 12, 0, 30, 0, time.UTC)
	end := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	msgs, err := s.GetMessages(context.Background(), types.MessageQuery{StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("查询消息失败: %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("期望窗口内 2 条消息, 实际得到 %d", len(msgs))
	}
}

func TestGetMessages_ByContact(t *testing.T) {
	s := newTestStore(t)

	msgs, err := s.GetMessages(context.Background(), types.MessageQuery{ContactID: "bob"})
	if err != nil {
		t.Fatalf("查询消息失败: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ContactID != "bob" {
		t.Errorf("期望 bob 的 1 条消息, 实际得到 %d 条", len(msgs))
	}
}

func TestGetMessages_Limit(t *testing.T) {
	s := newTestStore(t)

	msgs, err := s.GetMessages(context.Background(), types.MessageQuery{Limit: 2})
	if err != nil {
		t.Fatalf("查询消息失败: %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("期望限制为 2 条, 实际得到 %d", len(msgs))
	}
}

func TestGetContactIDs(t *testing.T) {
	s := newTestStore(t)

	ids, err := s.GetContactIDs(context.Background())
	if err != nil {
		t.Fatalf("查询联系人失败: %v", err)
	}
	want := []string{"alice", "bob"}
	if len(ids) != len(want) {
		t.Fatalf("期望 %d 个联系人, 实际得到 %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("期望联系人 %s, 实际得到 %s", want[i], ids[i])
		}
	}
}

func TestReload(t *testing.T) {
	s := newTestStore(t)
	if err := s.Reload(); err != nil {
		t.Fatalf("重新加载失败: %v", err)
	}
	// 重载后仍可查询
	if _, err := s.GetContactIDs(context.Background()); err != nil {
		t.Errorf("重载后查询失败: %v", err)
	}
}
