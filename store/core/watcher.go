package core

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher 监控数据目录的文件事件并分发给注册的回调。
type Watcher struct {
	watcher   *fsnotify.Watcher
	base      string
	callbacks []func(event fsnotify.Event)
	mu        sync.RWMutex
	done      chan struct{}
}

// NewWatcher 创建并挂载到 basePath。
func NewWatcher(basePath string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建 watcher 失败: %w", err)
	}
	if err := w.Add(basePath); err != nil {
		w.Close()
		return nil, fmt.Errorf("监控路径 %s 失败: %w", basePath, err)
	}
	return &Watcher{
		watcher: w,
		base:    basePath,
		done:    make(chan struct{}),
	}, nil
}

// Start 启动事件循环。
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.dispatch(event)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("Watcher 错误")
			case <-w.done:
				return
			}
		}
	}()
}

// Stop 停止事件循环并关闭底层 watcher。
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

// AddCallback 注册一个事件回调。
func (w *Watcher) AddCallback(cb func(event fsnotify.Event)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

func (w *Watcher) dispatch(event fsnotify.Event) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, cb := range w.callbacks {
		// 回调异步执行, 避免慢回调阻塞事件循环。
		go cb(event)
	}
}
