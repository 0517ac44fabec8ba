package migrate

import (
	"context"

	"github.com/kingsword09/frontpl/internal/project"
	"github.com/kingsword09/frontpl/internal/runner"
)

// RunDelegate runs tool directly, then through each package manager's
// run-once form until one succeeds. The preferred manager is tried first.
func RunDelegate(ctx context.Context, r runner.Runner, dir string, preferred project.PackageManager, tool string, args ...string) bool {
	if r.Run(ctx, dir, tool, args...) {
		return true
	}
	for _, pm := range delegateOrder(preferred) {
		name, pmArgs := pm.ExecArgs(tool, args...)
		if r.Run(ctx, dir, name, pmArgs...) {
			return true
		}
	}
	return false
}

func delegateOrder(preferred project.PackageManager) []project.PackageManager {
	order := make([]project.PackageManager, 0, len(project.FallbackOrder())+1)
	if preferred != "" {
		order = append(order, preferred)
	}
	for _, pm := range project.FallbackOrder() {
		if pm != preferred {
			order = append(order, pm)
		}
	}
	return order
}
