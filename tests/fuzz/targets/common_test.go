package targets

import (
	"runtime"
	"testing"

	"github.com/funvibe/softbind/internal/registry"
	"github.com/funvibe/softbind/internal/shell"
)

// capFuzzProcs keeps parallel fuzz workers from starving the machine.
func capFuzzProcs() {
	if runtime.GOMAXPROCS(0) > 4 {
		runtime.GOMAXPROCS(4)
	}
}

func newShellStore(t testing.TB) *registry.Store {
	t.Helper()
	store, err := shell.NewStore()
	if err != nil {
		t.Fatalf("shell.NewStore: %v", err)
	}
	return store
}
