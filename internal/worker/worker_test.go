package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/carousel-studio/internal/queue"
	"github.com/marcus/carousel-studio/internal/types"
)

type fakePipeline struct {
	orchestrated []uuid.UUID
	hires        []uuid.UUID
	hiresFilter  [][]uuid.UUID
	result       *types.PipelineResult
	err          error
}

func (f *fakePipeline) Orchestrate(_ context.Context, carouselID uuid.UUID, progress func(int)) (*types.PipelineResult, error) {
	f.orchestrated = append(f.orchestrated, carouselID)
	if progress != nil {
		progress(10)
		progress(100)
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &types.PipelineResult{Success: true}, nil
}

func (f *fakePipeline) HandleHires(_ context.Context, carouselID uuid.UUID, slideIDs []uuid.UUID) error {
	f.hires = append(f.hires, carouselID)
	f.hiresFilter = append(f.hiresFilter, slideIDs)
	return f.err
}

type fakeLedger struct {
	started   []string
	progress  []int
	completed []string
	failed    []string
}

func (f *fakeLedger) RecordQueueJobStart(_ context.Context, messageID string, _ string, _ uuid.UUID, _ int) error {
	f.started = append(f.started, messageID)
	return nil
}

func (f *fakeLedger) UpdateQueueJobProgress(_ context.Context, _ string, pct int) error {
	f.progress = append(f.progress, pct)
	return nil
}

func (f *fakeLedger) MarkQueueJobCompleted(_ context.Context, messageID string) error {
	f.completed = append(f.completed, messageID)
	return nil
}

func (f *fakeLedger) MarkQueueJobFailed(_ context.Context, messageID string, _ error) error {
	f.failed = append(f.failed, messageID)
	return nil
}

func newTestWorker(p *fakePipeline, l *fakeLedger) *Worker {
	return New(Options{
		Pipeline: p,
		Ledger:   l,
		Logger:   zerolog.Nop(),
	})
}

func TestNewDefaultConcurrency(t *testing.T) {
	w := New(Options{Logger: zerolog.Nop()})
	assert.Equal(t, DefaultConcurrency, w.concurrency)

	w = New(Options{Concurrency: 8, Logger: zerolog.Nop()})
	assert.Equal(t, 8, w.concurrency)
}

func TestDispatchOrchestrate(t *testing.T) {
	p := &fakePipeline{}
	w := newTestWorker(p, &fakeLedger{})

	carouselID := uuid.New()
	msg := queue.Message{Name: queue.JobOrchestrate, Payload: queue.JobPayload{CarouselID: carouselID}}

	err := w.dispatch(context.Background(), msg, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{carouselID}, p.orchestrated)
	assert.Empty(t, p.hires)
}

func TestDispatchOrchestrateValidationFailureCompletes(t *testing.T) {
	p := &fakePipeline{result: &types.PipelineResult{
		Success: false,
		Errors:  []types.ValidationError{{SlidePosition: 1, Check: types.CheckMinFontSize}},
	}}
	w := newTestWorker(p, &fakeLedger{})

	msg := queue.Message{Name: queue.JobOrchestrate, Payload: queue.JobPayload{CarouselID: uuid.New()}}

	// Validation failure must not surface as a job error: retrying it
	// would not change the outcome.
	assert.NoError(t, w.dispatch(context.Background(), msg, zerolog.Nop()))
}

func TestDispatchRenderHires(t *testing.T) {
	p := &fakePipeline{}
	w := newTestWorker(p, &fakeLedger{})

	carouselID := uuid.New()
	filter := []uuid.UUID{uuid.New(), uuid.New()}
	msg := queue.Message{Name: queue.JobRenderHires, Payload: queue.JobPayload{CarouselID: carouselID, SlideIDs: filter}}

	require.NoError(t, w.dispatch(context.Background(), msg, zerolog.Nop()))

	assert.Equal(t, []uuid.UUID{carouselID}, p.hires)
	assert.Equal(t, filter, p.hiresFilter[0])
	assert.Empty(t, p.orchestrated)
}

func TestDispatchUnknownJobName(t *testing.T) {
	w := newTestWorker(&fakePipeline{}, &fakeLedger{})

	msg := queue.Message{Name: "compact-thumbnails", Payload: queue.JobPayload{CarouselID: uuid.New()}}
	err := w.dispatch(context.Background(), msg, zerolog.Nop())

	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown job name")
}

func TestDispatchPropagatesFatalError(t *testing.T) {
	p := &fakePipeline{err: errors.New("LLM API error 503: overloaded")}
	w := newTestWorker(p, &fakeLedger{})

	msg := queue.Message{Name: queue.JobOrchestrate, Payload: queue.JobPayload{CarouselID: uuid.New()}}
	err := w.dispatch(context.Background(), msg, zerolog.Nop())

	require.Error(t, err)
	assert.ErrorContains(t, err, "LLM API error 503")
}

func TestProcessSuccessUpdatesLedger(t *testing.T) {
	p := &fakePipeline{}
	l := &fakeLedger{}
	w := newTestWorker(p, l)

	msg := queue.Message{ID: "msg-1", Name: queue.JobOrchestrate, Payload: queue.JobPayload{CarouselID: uuid.New()}}
	w.process(context.Background(), &queue.Delivery{Message: msg, Attempt: 1})

	assert.Equal(t, []string{"msg-1"}, l.started)
	assert.Equal(t, []int{10, 100}, l.progress)
	assert.Equal(t, []string{"msg-1"}, l.completed)
	assert.Empty(t, l.failed)
}
