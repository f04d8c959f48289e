package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/wrapbrain/internal/adapters/mq/queue"
	"github.com/okian/wrapbrain/internal/adapters/mq/worker"
	"github.com/okian/wrapbrain/internal/adapters/renderer"
	"github.com/okian/wrapbrain/internal/domain/model"
	"github.com/okian/wrapbrain/internal/domain/render"
	"github.com/okian/wrapbrain/pkg/logger"
)

func init() {
	_ = logger.Init()
}

// recordingTracker captures status transitions per job.
type recordingTracker struct {
	mu          sync.Mutex
	transitions map[string][]render.JobStatus
	outputURLs  map[string]string
	errors      map[string]string
}

func newRecordingTracker() *recordingTracker {
	return &recordingTracker{
		transitions: make(map[string][]render.JobStatus),
		outputURLs:  make(map[string]string),
		errors:      make(map[string]string),
	}
}

func (t *recordingTracker) SetStatus(_ context.Context, id string, status render.JobStatus, outputURL, errMsg string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transitions[id] = append(t.transitions[id], status)
	if outputURL != "" {
		t.outputURLs[id] = outputURL
	}
	if errMsg != "" {
		t.errors[id] = errMsg
	}
	return nil
}

func (t *recordingTracker) transitionsFor(id string) []render.JobStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]render.JobStatus, len(t.transitions[id]))
	copy(out, t.transitions[id])
	return out
}

func dispatchJob(id string) render.Job {
	return render.Job{
		ID:       id,
		Platform: model.PlatformInstagram,
		Status:   render.StatusPending,
		Timeline: render.Timeline{
			TemplateID:    "wrap-reel-baseline",
			Modifications: map[string]any{"Video.source": "https://cdn.example.com/clip.mp4"},
		},
	}
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestWorkerDispatch(t *testing.T) {
	Convey("Given a worker over a job queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(10))
		tracker := newRecordingTracker()

		Convey("When the submission succeeds with an output URL", func() {
			stub := renderer.NewStub()
			w := worker.NewInMemoryWorker(q, stub, tracker, worker.WithName("test-worker"))
			go w.Run(ctx)

			So(q.Enqueue(ctx, dispatchJob("job-ok")), ShouldBeTrue)

			Convey("Then the job transitions rendering then complete", func() {
				ok := waitFor(func() bool {
					return len(tracker.transitionsFor("job-ok")) == 2
				})
				So(ok, ShouldBeTrue)
				So(tracker.transitionsFor("job-ok"), ShouldResemble, []render.JobStatus{
					render.StatusRendering,
					render.StatusComplete,
				})
				tracker.mu.Lock()
				defer tracker.mu.Unlock()
				So(tracker.outputURLs["job-ok"], ShouldNotBeEmpty)
			})
		})

		Convey("When the submission fails", func() {
			stub := renderer.NewStub()
			stub.Err = errors.New("service unavailable")
			w := worker.NewInMemoryWorker(q, stub, tracker)
			go w.Run(ctx)

			So(q.Enqueue(ctx, dispatchJob("job-bad")), ShouldBeTrue)

			Convey("Then the job transitions rendering then failed with the error", func() {
				ok := waitFor(func() bool {
					return len(tracker.transitionsFor("job-bad")) == 2
				})
				So(ok, ShouldBeTrue)
				So(tracker.transitionsFor("job-bad"), ShouldResemble, []render.JobStatus{
					render.StatusRendering,
					render.StatusFailed,
				})
				tracker.mu.Lock()
				defer tracker.mu.Unlock()
				So(tracker.errors["job-bad"], ShouldContainSubstring, "service unavailable")
			})
		})

		Convey("When the worker is shut down", func() {
			w := worker.NewInMemoryWorker(q, renderer.NewStub(), tracker)
			go w.Run(ctx)

			shutdownCtx, shutdownCancel := context.WithTimeout(ctx, time.Second)
			defer shutdownCancel()
			err := w.Shutdown(shutdownCtx)

			Convey("Then shutdown completes cleanly", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a worker pool", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		tracker := newRecordingTracker()
		pool := worker.NewPool(4, q, renderer.NewStub(), tracker)

		Convey("When jobs are enqueued and the pool runs", func() {
			pool.Start(ctx)

			ids := []string{"p-0", "p-1", "p-2", "p-3", "p-4"}
			for _, id := range ids {
				So(q.Enqueue(ctx, dispatchJob(id)), ShouldBeTrue)
			}

			Convey("Then every job reaches a terminal transition", func() {
				ok := waitFor(func() bool {
					for _, id := range ids {
						trs := tracker.transitionsFor(id)
						if len(trs) < 2 {
							return false
						}
					}
					return true
				})
				So(ok, ShouldBeTrue)
				for _, id := range ids {
					trs := tracker.transitionsFor(id)
					So(trs[len(trs)-1], ShouldEqual, render.StatusComplete)
				}
			})

			Convey("And shutting down the pool closes the queue", func() {
				err := pool.Shutdown(ctx)
				So(err, ShouldBeNil)
				So(q.IsClosed(), ShouldBeTrue)
			})
		})
	})
}
