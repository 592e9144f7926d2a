package game

import (
	"fmt"
	"log"

	"github.com/decker502/roseday/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName gdata 存储使用的应用名
const AppName = "roseday"

// CardSettings 播放偏好
// 只保存音频和显示偏好，不保存任何界面状态（每次启动都从开场界面开始）
type CardSettings struct {
	MusicVolume  float64 `yaml:"musicVolume"`  // 背景音乐音量 0.0 ~ 1.0
	HoverVolume  float64 `yaml:"hoverVolume"`  // 悬停提示音音量 0.0 ~ 1.0
	MusicEnabled bool    `yaml:"musicEnabled"` // 允许播放背景音乐
	HoverEnabled bool    `yaml:"hoverEnabled"` // 允许播放悬停提示音
	Fullscreen   bool    `yaml:"fullscreen"`   // 启动时是否全屏
}

// DefaultSettings 返回默认偏好
func DefaultSettings() *CardSettings {
	return &CardSettings{
		MusicVolume:  0.7,
		HoverVolume:  1.0,
		MusicEnabled: true,
		HoverEnabled: true,
	}
}

// normalize 把读到的值限制在合法范围内
func (s *CardSettings) normalize() {
	s.MusicVolume = clampVolume(s.MusicVolume)
	s.HoverVolume = clampVolume(s.HoverVolume)
}

// SettingsManager 偏好管理器
// gdataManager 为 nil 时进入降级模式：只在内存中保存，Save 不报错
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *CardSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "preferences"
)

// OpenSettingsStore 打开跨平台存储
// 失败时返回 nil，调用方以降级模式继续运行
func OpenSettingsStore() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return nil
	}
	return m
}

// NewSettingsManager 创建偏好管理器并加载已保存的偏好
// 加载失败不是致命错误，使用默认值
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 读取偏好
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.normalize()
	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded")
	return nil
}

// Save 写入 gdata
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Update 修改偏好并立即保存
//
// 参数：
//   - fn: 对偏好的修改，执行后数值会被重新限制在合法范围内
//
// 返回：
//   - error: 保存失败（内存中的修改仍然生效）
func (sm *SettingsManager) Update(fn func(*CardSettings)) error {
	fn(sm.settings)
	sm.settings.normalize()
	return sm.Save()
}

// Settings 返回当前偏好的副本
func (sm *SettingsManager) Settings() CardSettings {
	return *sm.settings
}

// Persistent 是否能持久化
func (sm *SettingsManager) Persistent() bool {
	return sm.gdataManager != nil
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
