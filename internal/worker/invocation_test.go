package worker

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/github-connector/internal/models"
	"github.com/KOFI-GYIMAH/github-connector/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) Handle(ctx context.Context, source models.Source, event models.Event) models.Response {
	args := m.Called(ctx, source, event)
	return args.Get(0).(models.Response)
}

// * fakeConsumer delivers the given events, then blocks until ctx is done
type fakeConsumer struct {
	events  []models.Event
	replies []models.Response
	err     error
}

func (f *fakeConsumer) ConsumeInvocations(ctx context.Context, handler queue.InvocationHandler) error {
	if f.err != nil {
		return f.err
	}
	for _, ev := range f.events {
		f.replies = append(f.replies, handler(ctx, ev))
	}
	<-ctx.Done()
	return nil
}

func TestInvocationWorker_Run(t *testing.T) {
	h := new(MockHandler)
	h.On("Handle", mock.Anything, models.SourceQueue, models.Event{Action: "get_issues"}).
		Return(models.Response{StatusCode: http.StatusOK, Body: "[]"}).Once()
	h.On("Handle", mock.Anything, models.SourceQueue, models.Event{Action: "nope"}).
		Return(models.Response{StatusCode: http.StatusBadRequest, Body: `"Unknown action: nope"`}).Once()

	consumer := &fakeConsumer{events: []models.Event{{Action: "get_issues"}, {Action: "nope"}}}
	w := NewInvocationWorker(consumer, h, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, w.Run(ctx))
	assert.Len(t, consumer.replies, 2)
	assert.Equal(t, http.StatusOK, consumer.replies[0].StatusCode)
	assert.Equal(t, http.StatusBadRequest, consumer.replies[1].StatusCode)
	h.AssertExpectations(t)
}

func TestInvocationWorker_AppliesTimeout(t *testing.T) {
	h := new(MockHandler)
	h.On("Handle", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), models.SourceQueue, mock.Anything).Return(models.Response{StatusCode: http.StatusOK}).Once()

	consumer := &fakeConsumer{events: []models.Event{{Action: "get_branches"}}}
	w := NewInvocationWorker(consumer, h, time.Second)

	// * No deadline on the outer context, so any deadline seen comes from the worker
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	assert.NoError(t, w.Run(ctx))
	h.AssertExpectations(t)
}

func TestInvocationWorker_ConsumerError(t *testing.T) {
	w := NewInvocationWorker(&fakeConsumer{err: errors.New("connection closed")}, new(MockHandler), 0)
	assert.EqualError(t, w.Run(context.Background()), "connection closed")
}
