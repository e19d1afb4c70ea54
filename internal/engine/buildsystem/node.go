package buildsystem

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/assemble/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/assemble/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/assemble/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/assemble/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/assemble/internal/core/ports"
)

// NodeID is the unique identifier for the build system Graft node.
const NodeID graft.ID = "engine.buildsystem"

func init() {
	graft.Register(graft.Node[*BuildSystem]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ResolverNodeID,
			fs.FileCacheNodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*BuildSystem, error) {
			resolver, err := graft.Dep[ports.SourceResolver](ctx)
			if err != nil {
				return nil, err
			}

			caches, err := graft.Dep[ports.FileCacheFactory](ctx)
			if err != nil {
				return nil, err
			}

			stamps, err := graft.Dep[ports.StampStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.OutputVerifier](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(resolver, caches, stamps, hasher, verifier, telemetry, log), nil
		},
	})
}
