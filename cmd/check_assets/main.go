// Package main 检查贺卡配置引用的资源是否都能读取
//
// Usage:
//
//	go run ./cmd/check_assets [-root .] [-config data/card.yaml]
//
// 在仓库根目录运行，data/ 下的引用从磁盘读取（与内嵌内容相同）。
// 先校验配置本身，再逐个读取音乐和五种颜色的图片引用（内嵌、磁盘或 URL），
// 打印大小和 MD5。任何资源不可读时以状态码 1 退出。
package main

import (
	"crypto/md5"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/decker502/roseday/pkg/components"
	"github.com/decker502/roseday/pkg/config"
	"github.com/decker502/roseday/pkg/embedded"
	"github.com/decker502/roseday/pkg/game"
)

var (
	rootFlag   = flag.String("root", ".", "Repository root that contains data/")
	configFlag = flag.String("config", config.DefaultCardConfigPath, "Card config YAML")
)

func main() {
	flag.Parse()
	embedded.Init(os.DirFS(*rootFlag))

	cfg, err := config.LoadCardConfig(*configFlag)
	if err != nil {
		fmt.Printf("❌ 配置无效: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 配置有效: %s (%d 个颜色选项)\n", cfg.Recipient, len(cfg.ChoiceColors()))

	refs := map[string]string{"music": cfg.Assets.Music}
	for _, rc := range components.AllRoseColors {
		refs["image "+rc.String()] = cfg.ImageRef(rc)
	}
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	sort.Strings(names)

	rm := game.NewResourceManager(nil)
	missing := 0
	for _, name := range names {
		ref := refs[name]
		data, err := rm.ReadRef(ref)
		if err != nil {
			fmt.Printf("❌ %-14s %s: %v\n", name, ref, err)
			missing++
			continue
		}
		fmt.Printf("✅ %-14s %s (%d bytes, md5 %x)\n", name, ref, len(data), md5.Sum(data))
	}

	if missing > 0 {
		fmt.Printf("❌ 有 %d 个资源不可用（界面会显示占位内容）\n", missing)
		os.Exit(1)
	}
}
