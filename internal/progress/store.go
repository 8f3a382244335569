// Package progress 维护分析运行的内存注册表。
// 引擎本身不持久化任何状态, 运行记录只活在进程内。
package progress

import (
	"context"
	"sync"
	"time"

	"github.com/afumu/chatwrapped/internal/model"
)

// 运行状态。
const (
	StateRunning   = "running"
	StateDone      = "done"
	StateFailed    = "failed"
	StateCancelled = "cancelled"
)

// Run 一次分析运行的可见状态。
type Run struct {
	ID        string                 `json:"id"`
	State     string                 `json:"state"`
	Fraction  float64                `json:"fraction"` // [0,1] 单调递增
	Step      string                 `json:"step"`     // 当前阶段标签
	Error     string                 `json:"error,omitempty"`
	StartedAt time.Time              `json:"startedAt"`
	Result    *model.WrappedInsights `json:"result,omitempty"` // 完成后一次性发布
}

type runEntry struct {
	run    Run
	cancel context.CancelFunc
}

// Store 并发安全的运行注册表。
type Store struct {
	mu   sync.RWMutex
	runs map[string]*runEntry
}

// NewStore 创建注册表。
func NewStore() *Store {
	return &Store{runs: make(map[string]*runEntry)}
}

// Begin 登记一个新运行。cancel 用于 Cancel 时中断流水线。
func (s *Store) Begin(id string, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[id] = &runEntry{
		run: Run{
			ID:        id,
			State:     StateRunning,
			StartedAt: time.Now(),
		},
		cancel: cancel,
	}
}

// Update 推进进度。fraction 只增不减, 保持单调。
func (s *Store) Update(id string, fraction float64, step string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.runs[id]
	if !ok || entry.run.State != StateRunning {
		return
	}
	if fraction > entry.run.Fraction {
		entry.run.Fraction = fraction
	}
	entry.run.Step = step
}

// Complete 发布最终结果。结果整体原子可见, 不存在半成品状态。
func (s *Store) Complete(id string, result *model.WrappedInsights) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.runs[id]; ok {
		entry.run.State = StateDone
		entry.run.Fraction = 1
		entry.run.Step = "完成"
		entry.run.Result = result
	}
}

// Fail 标记运行失败。
func (s *Store) Fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.runs[id]; ok {
		entry.run.State = StateFailed
		entry.run.Error = err.Error()
	}
}

// Cancel 取消一个进行中的运行。对已结束的运行是无害的空操作。
func (s *Store) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.runs[id]
	if !ok {
		return false
	}
	if entry.run.State == StateRunning {
		entry.run.State = StateCancelled
		entry.cancel()
	}
	return true
}

// Get 查询运行状态的副本。
func (s *Store) Get(id string) (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.runs[id]
	if !ok {
		return Run{}, false
	}
	return entry.run, true
}
