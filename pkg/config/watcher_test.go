package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// waitForConfig 轮询 watcher，直到拿到满足条件的配置或超时
func waitForConfig(t *testing.T, w *CardConfigWatcher, match func(*CardConfig) bool) *CardConfig {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cfg, ok := w.Poll(); ok && match(cfg) {
			return cfg
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("timed out waiting for config reload")
	return nil
}

func TestCardConfigWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.yaml")
	if err := os.WriteFile(path, []byte("recipient: First\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := WatchCardConfig(path)
	if err != nil {
		t.Fatalf("WatchCardConfig failed: %v", err)
	}
	defer w.Close()

	if _, ok := w.Poll(); ok {
		t.Fatal("no update expected before the file changes")
	}

	if err := os.WriteFile(path, []byte("recipient: Second\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := waitForConfig(t, w, func(c *CardConfig) bool { return c.Recipient == "Second" })
	if cfg.Message == "" {
		t.Error("reloaded config should keep default fields")
	}
}

// TestCardConfigWatcherIgnoresInvalid 无效内容不会替换已发布的配置
func TestCardConfigWatcherIgnoresInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.yaml")
	if err := os.WriteFile(path, []byte("recipient: Ok\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := WatchCardConfig(path)
	if err != nil {
		t.Fatalf("WatchCardConfig failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("tone: Furious\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// 给 watcher 处理无效写入的时间
	time.Sleep(200 * time.Millisecond)
	if cfg, ok := w.Poll(); ok {
		t.Fatalf("invalid config should not be published, got %+v", cfg.Tone)
	}

	if err := os.WriteFile(path, []byte("recipient: Fixed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitForConfig(t, w, func(c *CardConfig) bool { return c.Recipient == "Fixed" })
}
