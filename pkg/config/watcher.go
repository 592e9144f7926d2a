package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// CardConfigWatcher 监听磁盘上的配置文件并在修改后重新加载
//
// fsnotify 事件在独立 goroutine 中到达，解析后的配置通过带缓冲的
// channel 交给游戏循环，由 Poll() 在 Update 中非阻塞取出，
// 所以配置的替换始终发生在游戏循环线程上。
type CardConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *CardConfig
	done    chan struct{}
}

// WatchCardConfig 开始监听配置文件
// 监听的是所在目录（编辑器保存时常常是替换文件而非原地写入）
func WatchCardConfig(path string) (*CardConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	cw := &CardConfigWatcher{
		path:    abs,
		watcher: w,
		updates: make(chan *CardConfig, 1),
		done:    make(chan struct{}),
	}
	go cw.loop()
	log.Printf("[ConfigWatcher] Watching %s", abs)
	return cw, nil
}

func (cw *CardConfigWatcher) loop() {
	defer close(cw.done)
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			cfg, err := LoadCardConfig(cw.path)
			if err != nil {
				// 编辑过程中的半成品文件很常见，保留旧配置
				log.Printf("[ConfigWatcher] Warning: reload failed: %v", err)
				continue
			}
			cw.publish(cfg)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ConfigWatcher] Warning: %v", err)
		}
	}
}

// publish 只保留最新的一份配置
func (cw *CardConfigWatcher) publish(cfg *CardConfig) {
	select {
	case cw.updates <- cfg:
	default:
		select {
		case <-cw.updates:
		default:
		}
		cw.updates <- cfg
	}
}

// Poll 非阻塞地取出最近一次成功加载的配置
func (cw *CardConfigWatcher) Poll() (*CardConfig, bool) {
	select {
	case cfg := <-cw.updates:
		return cfg, true
	default:
		return nil, false
	}
}

// Close 停止监听并等待后台 goroutine 退出
func (cw *CardConfigWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}
