package buildsystem

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
)

// buildTarget brings a single target up to date. Its dependencies are complete.
func (s *runState) buildTarget(ctx context.Context, t *domain.Target) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	ctx, vertex := s.b.telemetry.Record(ctx, t.Name, ports.WithInputs(t.DependencyNames()...))
	defer func() { vertex.Complete(err) }()

	inputs, hashes, err := s.hashInputs(t)
	if err != nil {
		return err
	}

	fingerprint := s.b.hasher.Fingerprint(t)
	stamp, err := s.loadStamp(t, fingerprint)
	if err != nil {
		return err
	}

	var changes domain.ChangeSet
	if stamp == nil || s.opts.Force {
		changes = domain.DiffHashes(nil, hashes)
	} else {
		changes = domain.DiffHashes(stamp.InputHashes(), hashes)
		if len(changes) == 0 {
			s.b.logger.Debug(fmt.Sprintf("%s is up to date", t.Name))
			vertex.Cached()
			s.record(t, false, time.Since(start))
			return nil
		}
	}

	s.b.logger.Info(fmt.Sprintf("building %s (%d changed)", t.Name, len(changes)))
	// A target whose action fails must not keep the stamp of an earlier success.
	if err := s.b.stamps.Remove(s.env.BuildDir, t.StampName(s.env)); err != nil {
		return err
	}
	if t.Action != nil {
		if err := t.Action.Run(ctx, changes, s.env); err != nil {
			return err
		}
	}

	outputs, err := s.b.resolver.ResolveAll(t.Outputs, s.env)
	if err != nil {
		return err
	}
	s.cache.Invalidate(outputs)
	s.verifyOutputs(t)

	newStamp := &domain.Stamp{
		Name:         t.Name,
		Dependencies: t.DependencyNames(),
		Inputs:       inputs,
		Outputs:      outputs,
		Hashes:       hashes,
		Fingerprint:  fingerprint,
	}
	if err := s.b.stamps.Put(s.env.BuildDir, t.StampName(s.env), newStamp); err != nil {
		return err
	}
	if err := s.cache.Persist(); err != nil {
		return err
	}

	s.record(t, true, time.Since(start))
	return nil
}

// hashInputs resolves and hashes the target's inputs. The returned paths are sorted.
// A resolved input that cannot be hashed does not exist and fails the build.
func (s *runState) hashInputs(t *domain.Target) ([]string, map[string]string, error) {
	patterns := make(map[string]domain.Source)
	var inputs []string
	for _, source := range t.Inputs {
		paths, err := s.b.resolver.Resolve(source, s.env)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range paths {
			if _, seen := patterns[p]; seen {
				continue
			}
			patterns[p] = source
			inputs = append(inputs, p)
		}
	}
	slices.Sort(inputs)

	hashes := s.cache.HashFiles(inputs)
	for _, p := range inputs {
		if _, ok := hashes[p]; !ok {
			return nil, nil, &domain.MissingInputError{Target: t.Name, Pattern: patterns[p].String(), Path: p}
		}
	}
	return inputs, hashes, nil
}

// loadStamp returns the target's stamp, or nil when there is no valid one.
func (s *runState) loadStamp(t *domain.Target, fingerprint string) (*domain.Stamp, error) {
	stamp, err := s.b.stamps.Get(s.env.BuildDir, t.StampName(s.env))
	if errors.Is(err, domain.ErrStampCorrupt) {
		s.b.logger.Warn(fmt.Sprintf("ignoring corrupt stamp of %s: %v", t.Name, err))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if stamp != nil && stamp.Fingerprint != fingerprint {
		s.b.logger.Debug(fmt.Sprintf("declaration of %s changed", t.Name))
		return nil, nil
	}
	return stamp, nil
}

// verifyOutputs warns about plain declared outputs the action did not produce.
func (s *runState) verifyOutputs(t *domain.Target) {
	var declared []string
	for _, source := range t.Outputs {
		if source.IsGlob() {
			continue
		}
		paths, err := s.b.resolver.Resolve(source, s.env)
		if err != nil {
			continue
		}
		declared = append(declared, paths...)
	}
	if len(declared) == 0 {
		return
	}

	missing, err := s.b.verifier.MissingOutputs(declared)
	if err != nil {
		s.b.logger.Warn(fmt.Sprintf("could not verify outputs of %s: %v", t.Name, err))
		return
	}
	for _, p := range missing {
		s.b.logger.Warn(fmt.Sprintf("%s did not produce declared output %s", t.Name, p))
	}
}
