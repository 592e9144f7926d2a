package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one full-screen card scene.
type Scene interface {
	// Update advances the scene; deltaTime is in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，持有定时任务或音频的场景实现它
//
// 实现此接口的场景会在以下时机被调用 Close()：
//   - 被另一个场景替换
//   - 游戏窗口关闭
type Disposable interface {
	Close()
}
