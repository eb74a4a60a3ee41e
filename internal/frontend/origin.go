package frontend

import (
	"fmt"
	"sync"

	"github.com/gnargs/gnargs/internal/gnvalue"
)

// originRegistry hands out one *gnvalue.Node per (file, key) pair so that the
// same declaration, re-evaluated when its file is imported under more than
// one toolchain, always carries the same Origin identity. Without this,
// every TOML decode would mint a fresh Node and the "same-origin
// re-declaration is silently accepted" rule in args.DeclareArgs could never
// fire for a real import file.
type originRegistry struct {
	mu    sync.Mutex
	nodes map[string]*gnvalue.Node
}

var registry = &originRegistry{nodes: make(map[string]*gnvalue.Node)}

// originFor returns the stable Origin for a (path, key) site.
func originFor(path, key string) gnvalue.Origin {
	id := path + "#" + key
	registry.mu.Lock()
	defer registry.mu.Unlock()

	node, ok := registry.nodes[id]
	if !ok {
		node = &gnvalue.Node{Name: fmt.Sprintf("%s: %s", path, key)}
		registry.nodes[id] = node
	}
	return gnvalue.NewOrigin(node)
}
