package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/darklord813/gamevault/pkg/configs"
	ctxPkg "github.com/darklord813/gamevault/pkg/context"
	"github.com/darklord813/gamevault/pkg/internal/storage"
	kvc "github.com/darklord813/gamevault/pkg/internal/storage/kv"
	"github.com/darklord813/gamevault/pkg/internal/types"
)

var configOnce sync.Once

// newTestContext 构造带内存 KV 的测试上下文，并加载默认配置.
func newTestContext(t *testing.T) context.Context {
	t.Helper()

	configOnce.Do(func() {
		if err := configs.InitConfig(t.TempDir()); err != nil {
			t.Fatalf("init config: %v", err)
		}
	})

	mem, err := kvc.NewKVStore(context.Background(), kvc.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	mgr := &storage.Manager{KV: &kvc.Client{KVStore: mem}}

	return ctxPkg.WithStorageManager(context.Background(), mgr)
}

// fixedClock 返回一个可推进的测试时钟.
func fixedClock(start time.Time) (func() time.Time, func(d time.Duration)) {
	current := start

	now := func() time.Time { return current }
	advance := func(d time.Duration) { current = current.Add(d) }

	return now, advance
}

// validGameRequest 返回一个通过校验的游戏输入.
func validGameRequest(name string) *types.SaveGameRequest {
	return &types.SaveGameRequest{
		Name:     name,
		Genre:    "Action",
		Platform: "PC",
		Size:     "500MB",
		ModInfo:  "Unlocked",
		Image:    "data:image/jpeg;base64,xxxx",
		DownloadLinks: []types.DownloadLinkInput{
			{Label: "MediaFire", URL: "https://example.com/dl"},
		},
	}
}
