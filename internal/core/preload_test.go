package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPreload_AllSucceed(t *testing.T) {
	a := &fakeBackend{name: "a", responses: []fakeResponse{{text: sampleJSON(t, true)}}}
	g, _ := newTestGenerator([]LLMClient{a}, nil, GeneratorOptions{PreloadConcurrency: 3})

	samples := g.Preload(context.Background(), LocaleEN, 5)

	assert.Len(t, samples, 5)
	assert.Equal(t, 5, a.callCount())
}

func TestPreload_DropsFailures(t *testing.T) {
	a := &fakeBackend{name: "a", responses: []fakeResponse{
		{text: sampleJSON(t, true)},
		{text: sampleJSON(t, false)},
		{err: errors.New("upstream 500")},
	}}
	g, _ := newTestGenerator([]LLMClient{a}, nil, GeneratorOptions{PreloadConcurrency: 2})

	samples := g.Preload(context.Background(), LocaleEN, 5)

	require.Len(t, samples, 2)
	for _, s := range samples {
		assert.NotEqual(t, FallbackSample(LocaleEN).Subject, s.Subject)
	}
}

func TestPreload_AllFailReturnsSingleFallback(t *testing.T) {
	a := &fakeBackend{name: "a", responses: []fakeResponse{{err: errors.New("down")}}}
	g, _ := newTestGenerator([]LLMClient{a}, nil, GeneratorOptions{PreloadConcurrency: 5})

	samples := g.Preload(context.Background(), LocaleZH, 4)

	require.Len(t, samples, 1)
	assert.Equal(t, FallbackSample(LocaleZH), samples[0])
}

func TestPreload_NoBackends(t *testing.T) {
	g, _ := newTestGenerator(nil, nil, GeneratorOptions{})

	samples := g.Preload(context.Background(), LocaleEN, 3)

	require.Len(t, samples, 1)
	assert.Equal(t, FallbackSample(LocaleEN), samples[0])
}

func TestPreload_UsesLivePrompt(t *testing.T) {
	a := &fakeBackend{name: "a", responses: []fakeResponse{{text: sampleJSON(t, true)}}}
	g, _ := newTestGenerator([]LLMClient{a}, nil, GeneratorOptions{})

	g.Preload(context.Background(), LocaleEN, 1)

	require.Len(t, a.prompts, 1)
	assert.Equal(t, float32(1.2), a.prompts[0].Temperature)
	assert.Equal(t, livePolicyEN, a.prompts[0].System)
}

func TestPreload_LogsGeneratedCountWithoutFallback(t *testing.T) {
	observed, logs := observer.New(zap.InfoLevel)
	a := &fakeBackend{name: "a", responses: []fakeResponse{{err: errors.New("down")}}}
	g := NewSampleGenerator([]LLMClient{a}, NewPromptBuilder(1.2, 1.0), nil, zap.New(observed), nil,
		GeneratorOptions{PreloadConcurrency: 2})

	samples := g.Preload(context.Background(), LocaleEN, 3)
	require.Len(t, samples, 1)

	finished := logs.FilterMessage("Preload finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, int64(3), finished[0].ContextMap()["requested"])
	assert.Equal(t, int64(0), finished[0].ContextMap()["generated"])
}
