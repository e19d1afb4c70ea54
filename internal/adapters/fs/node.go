package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/assemble/internal/core/ports"
)

const (
	WalkerNodeID    graft.ID = "adapter.fs.walker"
	ResolverNodeID  graft.ID = "adapter.fs.resolver"
	HasherNodeID    graft.ID = "adapter.fs.hasher"
	FileCacheNodeID graft.ID = "adapter.fs.filecache"
	VerifierNodeID  graft.ID = "adapter.fs.verifier"
)

func init() {
	// Walker Node (Concrete implementation needed by the watcher)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Resolver Node
	graft.Register(graft.Node[ports.SourceResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceResolver, error) {
			return NewResolver(), nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	// File cache factory Node
	graft.Register(graft.Node[ports.FileCacheFactory]{
		ID:        FileCacheNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.FileCacheFactory, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewFileCacheFactory(hasher), nil
		},
	})

	// Verifier Node
	graft.Register(graft.Node[ports.OutputVerifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OutputVerifier, error) {
			return NewVerifier(), nil
		},
	})
}
