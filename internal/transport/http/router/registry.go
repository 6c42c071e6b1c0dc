package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule 每个业务域一个模块，自己决定挂哪些路由、配什么角色白名单
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
// 不实现则默认 100
type prioritizer interface{ Priority() int }

// MountAll 在 /api/v1 上按优先级挂载模块
func MountAll(api *gin.RouterGroup, mods ...APIModule) {
	sorted := append([]APIModule(nil), mods...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityOf(sorted[i]) < priorityOf(sorted[j])
	})
	for _, m := range sorted {
		m.MountAPI(api)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
