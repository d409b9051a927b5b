package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/ehwaz/internal/apperr"
	"github.com/starford/ehwaz/internal/fingerprint"
	"github.com/starford/ehwaz/internal/notebook"
	"github.com/starford/ehwaz/internal/reconcile"
	"github.com/starford/ehwaz/internal/runner"
	"github.com/starford/ehwaz/internal/script"
	"github.com/starford/ehwaz/internal/storage"
)

// File extensions of the two representations.
const (
	scriptExt   = ".py"
	notebookExt = ".ipynb"
)

// Syncer drives one reconciliation pass over every document identity
// present in either directory.
type Syncer struct {
	scripts   storage.Provider
	notebooks storage.Provider
	exec      runner.Executor
	log       *slog.Logger

	workers         int
	continueOnError bool
}

// NewSyncer creates a sync driver over the two directories.
func NewSyncer(scripts, notebooks storage.Provider, exec runner.Executor, log *slog.Logger, cfg SyncConfig) *Syncer {
	return &Syncer{
		scripts:         scripts,
		notebooks:       notebooks,
		exec:            exec,
		log:             log,
		workers:         cfg.Workers,
		continueOnError: cfg.ContinueOnError,
	}
}

// Run reconciles every identity. Identities are independent, so they run
// through a bounded worker pool. The default policy halts the batch on
// the first fatal identity; with ContinueOnError the remaining identities
// are still processed and the failures are reported together.
func (s *Syncer) Run(ctx context.Context) error {
	stems, err := s.allStems()
	if err != nil {
		return err
	}
	s.log.Info("sync pass starting", slog.Int("identities", len(stems)))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	var mu sync.Mutex
	var failed []error

	for _, stem := range stems {
		stem := stem
		g.Go(func() error {
			err := s.syncPair(gCtx, stem)
			if err == nil {
				return nil
			}
			if s.continueOnError {
				s.log.Error("identity failed", slog.String("stem", stem), slog.String("error", err.Error()))
				mu.Lock()
				failed = append(failed, err)
				mu.Unlock()
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("sync: %d identities failed: %w", len(failed), errors.Join(failed...))
	}
	s.log.Info("sync pass complete", slog.Int("identities", len(stems)))
	return nil
}

// allStems returns the sorted union of stems across both directories.
func (s *Syncer) allStems() ([]string, error) {
	scriptStems, err := s.scripts.Stems(scriptExt)
	if err != nil {
		return nil, fmt.Errorf("sync: list scripts: %w", err)
	}
	nbStems, err := s.notebooks.Stems(notebookExt)
	if err != nil {
		return nil, fmt.Errorf("sync: list notebooks: %w", err)
	}
	seen := make(map[string]struct{}, len(scriptStems))
	out := make([]string, 0, len(scriptStems)+len(nbStems))
	for _, st := range scriptStems {
		seen[st] = struct{}{}
		out = append(out, st)
	}
	for _, st := range nbStems {
		if _, ok := seen[st]; !ok {
			out = append(out, st)
		}
	}
	sort.Strings(out)
	return out, nil
}

// syncPair resolves one identity and re-materializes both forms from the
// authoritative document. Nothing is persisted on any failure.
func (s *Syncer) syncPair(ctx context.Context, stem string) error {
	// A halted batch cancels the group context; later identities must not
	// start once a fatal condition has been hit.
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := s.loadPair(stem)
	if err != nil {
		return err
	}

	outcome, err := reconcile.Resolve(*in)
	if err != nil {
		return err
	}

	nb := outcome.Notebook
	if outcome.NeedsExecution {
		start := time.Now()
		executed, err := s.exec.Execute(ctx, nb)
		if err != nil {
			return &apperr.IdentityError{Stem: stem, Err: err}
		}
		s.log.Info("executed",
			slog.String("stem", stem),
			slog.Duration("took", time.Since(start)))
		nb = executed
	}

	nbData, err := notebook.Marshal(nb)
	if err != nil {
		return &apperr.IdentityError{Stem: stem, Err: err}
	}
	if err := s.notebooks.Write(stem+notebookExt, nbData); err != nil {
		return &apperr.IdentityError{Stem: stem, Err: err}
	}
	if err := s.scripts.Write(stem+scriptExt, script.Encode(nb, fingerprint.Sum(nb))); err != nil {
		return &apperr.IdentityError{Stem: stem, Err: err}
	}

	if outcome.Side == reconcile.SideScript {
		s.log.Info("synced", slog.String("direction", stem+scriptExt+" -> "+stem+notebookExt))
	} else {
		s.log.Info("synced", slog.String("direction", stem+notebookExt+" -> "+stem+scriptExt))
	}
	return nil
}

// loadPair reads whichever representations exist for stem.
func (s *Syncer) loadPair(stem string) (*reconcile.Input, error) {
	in := &reconcile.Input{Stem: stem}

	if ok, err := s.notebooks.Exists(stem + notebookExt); err != nil {
		return nil, err
	} else if ok {
		data, err := s.notebooks.Read(stem + notebookExt)
		if err != nil {
			return nil, &apperr.IdentityError{Stem: stem, Err: err}
		}
		nb, err := notebook.Unmarshal(data)
		if err != nil {
			return nil, &apperr.IdentityError{Stem: stem, Err: err}
		}
		in.Notebook = nb
	}

	if ok, err := s.scripts.Exists(stem + scriptExt); err != nil {
		return nil, err
	} else if ok {
		data, err := s.scripts.Read(stem + scriptExt)
		if err != nil {
			return nil, &apperr.IdentityError{Stem: stem, Err: err}
		}
		hash, hasHash, sc := script.Decode(data)
		in.Script = sc
		in.StoredHash = hash
		in.HasStoredHash = hasHash
	}

	return in, nil
}
