package systems

import (
	"slices"
	"time"
)

// LoadingTextSystem 绽放界面上轮换的提示文字
//
// Start 后立即显示初始文字，之后每个间隔切换到下一条，显示完最后一条即停止。
// 计数器由系统自己持有，定时任务只读写这里的字段。
type LoadingTextSystem struct {
	timers   *TimerSystem
	initial  string
	messages []string
	interval time.Duration

	text  string
	index int
	task  TaskID
}

// NewLoadingTextSystem 创建提示文字系统
func NewLoadingTextSystem(timers *TimerSystem, initial string, messages []string, interval time.Duration) *LoadingTextSystem {
	return &LoadingTextSystem{
		timers:   timers,
		initial:  initial,
		messages: slices.Clone(messages),
		interval: interval,
		text:     initial,
	}
}

// Configure 替换文字和间隔，下一次 Start 生效
func (s *LoadingTextSystem) Configure(initial string, messages []string, interval time.Duration) {
	s.initial = initial
	s.messages = slices.Clone(messages)
	s.interval = interval
}

// Start 从初始文字重新开始轮换
func (s *LoadingTextSystem) Start() {
	s.Stop()
	s.text = s.initial
	s.index = 0
	if len(s.messages) == 0 {
		return
	}
	s.task = s.timers.Every(s.interval, s.tick)
}

func (s *LoadingTextSystem) tick() {
	if s.index >= len(s.messages) {
		s.Stop()
		return
	}
	s.text = s.messages[s.index]
	s.index++
	if s.index >= len(s.messages) {
		s.Stop()
	}
}

// Stop 停止轮换，保留当前文字
func (s *LoadingTextSystem) Stop() {
	if s.task != 0 {
		s.timers.Cancel(s.task)
		s.task = 0
	}
}

// Running 是否仍在轮换
func (s *LoadingTextSystem) Running() bool {
	return s.task != 0
}

// Text 当前显示的文字
func (s *LoadingTextSystem) Text() string {
	return s.text
}
