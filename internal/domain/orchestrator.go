package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/curl/urler/internal/adapter"
	"github.com/curl/urler/internal/controller"
	"github.com/curl/urler/internal/engine"
	m "github.com/curl/urler/internal/model"
)

// Orchestrator drives the executor over a batch of input URLs, rendering one
// output per input. Inputs are independent: each gets a fresh handle and a
// failure to produce a URL does not stop the batch.
type Orchestrator interface {
	// Run processes mset.URLs in order. With no URLs at all it executes once
	// with an empty base so a URL can be synthesized from set operations.
	Run(ctx context.Context, mset m.MutationSet) error

	// RunStream processes URLs from src until it is exhausted.
	RunStream(ctx context.Context, mset m.MutationSet, src adapter.URLSource) error
}

type orchestrator struct {
	exec     Executor
	renderer Renderer
	ui       controller.UI
}

// NewOrchestrator constructs an Orchestrator from its collaborators.
func NewOrchestrator(exec Executor, renderer Renderer, ui controller.UI) Orchestrator {
	return &orchestrator{
		exec:     exec,
		renderer: renderer,
		ui:       ui,
	}
}

func (o *orchestrator) Run(ctx context.Context, mset m.MutationSet) error {
	failed := 0

	if len(mset.URLs) == 0 {
		failedInput, err := o.processOne(ctx, mset, nil)
		if err != nil {
			return err
		}

		if failedInput {
			failed++
		}

		return batchStatus(failed)
	}

	for i := range mset.URLs {
		failedInput, err := o.processOne(ctx, mset, &mset.URLs[i])
		if err != nil {
			return err
		}

		if failedInput {
			failed++
		}
	}

	return batchStatus(failed)
}

func (o *orchestrator) RunStream(ctx context.Context, mset m.MutationSet, src adapter.URLSource) error {
	failed := 0

	for {
		url, err := src.Next()
		if err == io.EOF {
			return batchStatus(failed)
		}

		if err != nil {
			slog.Error("Failed to read URL input", "error", err)
			return err
		}

		failedInput, err := o.processOne(ctx, mset, &url)
		if err != nil {
			return err
		}

		if failedInput {
			failed++
		}
	}
}

// processOne runs one input through the executor and renders it. An
// incomplete URL is reported and counted, anything else is fatal.
func (o *orchestrator) processOne(ctx context.Context, mset m.MutationSet, base *string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	err := o.renderOne(ctx, mset, base)
	if err == nil {
		if base != nil {
			slog.Debug("Processed URL", "input", *base)
		}

		return false, nil
	}

	if errors.Is(err, ErrIncompleteURL) {
		input := ""
		if base != nil {
			input = *base
		}

		o.ui.InputFailed(ctx, input, err)

		return true, nil
	}

	return false, err
}

func (o *orchestrator) renderOne(ctx context.Context, mset m.MutationSet, base *string) error {
	h, err := o.exec.Execute(ctx, mset, base)
	if err != nil {
		return err
	}

	if mset.Diff {
		return o.renderDiff(ctx, base, h)
	}

	if mset.Format != nil {
		o.ui.DisplayRendered(ctx, o.renderer.Render(ctx, *mset.Format, h, mset.DecodeOutput))
		return nil
	}

	var flags engine.Flags
	if mset.DecodeOutput {
		flags |= engine.URLDecode
	}

	url, err := h.Get(m.ComponentURL, flags)
	if err != nil {
		slog.Debug("URL synthesis failed", "error", err)
		return ErrIncompleteURL
	}

	o.ui.DisplayURL(ctx, url)

	return nil
}

// renderDiff shows what the mutations changed, component by component.
func (o *orchestrator) renderDiff(ctx context.Context, base *string, mutated engine.Handle) error {
	// The mutated URL must still add up for the diff to mean anything.
	if _, err := mutated.Get(m.ComponentURL, 0); err != nil {
		return ErrIncompleteURL
	}

	before, err := o.exec.Execute(ctx, m.MutationSet{}, base)
	if err != nil {
		return err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        componentLines(before),
		B:        componentLines(mutated),
		FromFile: "input",
		ToFile:   "output",
		Context:  3,
	})
	if err != nil {
		slog.Error("Failed to build diff", "error", err)
		return fmt.Errorf("failed to build diff: %w", err)
	}

	o.ui.DisplayDiff(ctx, diff)

	return nil
}

// componentLines lists the present components one per line for diffing.
func componentLines(h engine.Handle) []string {
	var lines []string

	for _, c := range m.Components() {
		if c == m.ComponentURL {
			continue
		}

		v, err := h.Get(c, 0)
		if err != nil {
			continue
		}

		lines = append(lines, fmt.Sprintf("%s: %s\n", c, v))
	}

	return lines
}

func batchStatus(failed int) error {
	if failed > 0 {
		return ErrIncompleteURL
	}

	return nil
}
