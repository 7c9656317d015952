package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/tilebingo/internal/adapters/mq/queue"
	"github.com/okian/tilebingo/internal/adapters/mq/worker"
	"github.com/okian/tilebingo/internal/domain/model"
	"github.com/okian/tilebingo/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// recordingExecutor echoes command text and tracks concurrency.
type recordingExecutor struct {
	mu       sync.Mutex
	inFlight int
	maxSeen  int
	handled  []string
	fail     bool
}

func (e *recordingExecutor) Execute(ctx context.Context, cmd worker.Command) (string, error) {
	e.mu.Lock()
	e.inFlight++
	if e.inFlight > e.maxSeen {
		e.maxSeen = e.inFlight
	}
	e.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	e.mu.Lock()
	e.inFlight--
	e.handled = append(e.handled, cmd.Text)
	e.mu.Unlock()

	if e.fail {
		return "boom", errors.New("executor failed")
	}
	return "echo: " + cmd.Text, nil
}

func TestWorkerLoop(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatal(err)
	}

	Convey("Given a queue drained by a single worker", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		exec := &recordingExecutor{}
		w := worker.New(q, exec)
		go w.Run(ctx)

		Convey("When dispatching a command with a reply channel", func() {
			reply := make(chan model.Reply, 1)
			ok := q.Enqueue(ctx, worker.Command{ID: "1", DiscordID: 7, Text: "board", Reply: reply})
			So(ok, ShouldBeTrue)

			Convey("Then the reply should arrive", func() {
				select {
				case r := <-reply:
					So(r.Text, ShouldEqual, "echo: board")
				case <-time.After(time.Second):
					t.Fatal("no reply received")
				}
			})
		})

		Convey("When dispatching many commands", func() {
			replies := make([]chan model.Reply, 0, 8)
			for i := 0; i < 8; i++ {
				r := make(chan model.Reply, 1)
				replies = append(replies, r)
				So(q.Enqueue(ctx, worker.Command{ID: "n", Text: "select A,1", Reply: r}), ShouldBeTrue)
			}
			for _, r := range replies {
				select {
				case <-r:
				case <-time.After(time.Second):
					t.Fatal("missing reply")
				}
			}

			Convey("Then they should be processed strictly one at a time", func() {
				exec.mu.Lock()
				defer exec.mu.Unlock()
				So(exec.maxSeen, ShouldEqual, 1)
				So(len(exec.handled), ShouldEqual, 8)
			})
		})

		Convey("When the executor reports an error", func() {
			exec.fail = true
			reply := make(chan model.Reply, 1)
			So(q.Enqueue(ctx, worker.Command{ID: "x", Text: "select A,1", Reply: reply}), ShouldBeTrue)

			Convey("Then the rendered text is still delivered", func() {
				select {
				case r := <-reply:
					So(r.Text, ShouldEqual, "boom")
				case <-time.After(time.Second):
					t.Fatal("no reply received")
				}
			})
		})

		Convey("When shutting down", func() {
			err := w.Shutdown(ctx)

			Convey("Then the worker should stop cleanly", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}
