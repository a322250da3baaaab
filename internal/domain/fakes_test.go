package domain

import (
	"context"
	"fmt"

	"github.com/curl/urler/internal/engine"
	m "github.com/curl/urler/internal/model"
)

// fakeEngine wraps the real engine and injects failures per component so
// error paths can be exercised deterministically.
type fakeEngine struct {
	inner  engine.Engine
	setErr map[m.Component]error
	getErr map[m.Component]error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		inner:  engine.NewURLEngine(),
		setErr: map[m.Component]error{},
		getErr: map[m.Component]error{},
	}
}

func (f *fakeEngine) New() engine.Handle {
	return &fakeHandle{inner: f.inner.New(), eng: f}
}

func (f *fakeEngine) Escape(s string) string {
	return f.inner.Escape(s)
}

func (f *fakeEngine) Unescape(s string) (string, error) {
	return f.inner.Unescape(s)
}

type fakeHandle struct {
	inner engine.Handle
	eng   *fakeEngine
}

func (f *fakeHandle) Set(c m.Component, value string, flags engine.Flags) error {
	if err := f.eng.setErr[c]; err != nil {
		return err
	}

	return f.inner.Set(c, value, flags)
}

func (f *fakeHandle) Get(c m.Component, flags engine.Flags) (string, error) {
	if err := f.eng.getErr[c]; err != nil {
		return "", err
	}

	return f.inner.Get(c, flags)
}

// recordingUI captures everything the pipeline displays.
type recordingUI struct {
	urls     []string
	rendered []string
	diffs    []string
	failures []string
	inputs   []string
}

func (r *recordingUI) DisplayURL(_ context.Context, url string) {
	r.urls = append(r.urls, url)
}

func (r *recordingUI) DisplayRendered(_ context.Context, rendered string) {
	r.rendered = append(r.rendered, rendered)
}

func (r *recordingUI) DisplayDiff(_ context.Context, diff string) {
	r.diffs = append(r.diffs, diff)
}

func (r *recordingUI) ComponentFailed(_ context.Context, component string, err error) {
	r.failures = append(r.failures, fmt.Sprintf("%s: %v", component, err))
}

func (r *recordingUI) InputFailed(_ context.Context, input string, _ error) {
	r.inputs = append(r.inputs, input)
}

func ptr(s string) *string {
	return &s
}
