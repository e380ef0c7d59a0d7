package adapter

import (
	"log/slog"

	m "planview.dev/pkg/planview/internal/model"
)

// RouterLog is the stand-in for the URL/router collaborator: it receives
// fire-and-forget notifications of global expand changes. The real router
// sync lives outside this engine; logging the transition keeps the seam
// observable.
type RouterLog struct{}

// NewRouterLog constructs a RouterLog.
func NewRouterLog() *RouterLog {
	return &RouterLog{}
}

// NotifyExpand records the global expand transition.
func (r *RouterLog) NotifyExpand(status m.ExpandStatus) {
	slog.Info("global expand changed", "expand", status)
}
