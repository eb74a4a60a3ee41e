// Package evalrun orchestrates concurrent, toolchain-parameterized
// evaluation: one root Scope per toolchain, all sharing a single Args
// registry, fanned out with golang.org/x/sync/errgroup and bounded the way
// a parallel file-walker bounds its own concurrent reads.
package evalrun

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gnargs/gnargs/internal/diag"
	"github.com/gnargs/gnargs/internal/gnargs"
	"github.com/gnargs/gnargs/internal/gnscope"
	"github.com/gnargs/gnargs/internal/gnsettings"
	"github.com/gnargs/gnargs/internal/gnvalue"
)

// ToolchainJob describes one toolchain's evaluation: the Settings identity
// its root Scope will carry, the declared-args block for its root build
// file, and the toolchain-scoped overrides (if any) that apply only within
// this toolchain.
type ToolchainJob struct {
	Settings           *gnsettings.Settings
	DeclaredArgs       map[string]gnvalue.Value
	ToolchainOverrides map[string]gnvalue.Value
}

// Run evaluates every job concurrently against the shared Args registry a.
// Each job gets its own root *gnscope.Scope seeded with sysVars via
// a.SetupRootScope, followed by a.DeclareArgs. Concurrency is capped at
// runtime.NumCPU(), mirroring WalkerConfig.Concurrency's "defaults to
// runtime.NumCPU() if <= 0" rule. The shared unused-override audit runs at
// most once, after every job's goroutine has returned -- a barrier is
// required here since the audit is only sound once every toolchain's
// declarations have landed. If any job reports a declaration error, the
// audit is skipped and that first error is returned with a nil scope map.
func Run(ctx context.Context, a *gnargs.Args, sysVars map[string]gnvalue.Value, jobs []ToolchainJob) (map[*gnsettings.Settings]*gnscope.Scope, *diag.Err) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var mu sync.Mutex
	scopes := make(map[*gnsettings.Settings]*gnscope.Scope, len(jobs))
	var firstDeclErr *diag.Err

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			scope := gnscope.New(job.Settings, nil)
			if err := a.SetupRootScope(scope, sysVars, job.ToolchainOverrides); err != nil {
				return fmt.Errorf("gnargs: setting up root scope for toolchain %q: %w", job.Settings.Label, err)
			}

			declErr := a.DeclareArgs(job.DeclaredArgs, scope)

			mu.Lock()
			scopes[job.Settings] = scope
			if declErr != nil && firstDeclErr == nil {
				firstDeclErr = declErr
			}
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, diag.New(gnvalue.Unknown, "Evaluation failed", err.Error())
	}
	if firstDeclErr != nil {
		return nil, firstDeclErr
	}

	if verifyErr := a.VerifyAllOverridesUsed(); verifyErr != nil {
		return scopes, verifyErr
	}

	return scopes, nil
}
