package asyncscope

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

type lockedBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func (lb *lockedBuffer) Write(p []byte) (int, error) {
	lb.lock.Lock()
	defer lb.lock.Unlock()
	return lb.buf.Write(p)
}

func (lb *lockedBuffer) String() string {
	lb.lock.Lock()
	defer lb.lock.Unlock()
	return lb.buf.String()
}

func TestSetLoggerReceivesTaskEvents(t *testing.T) {
	out := &lockedBuffer{}
	SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	g, _ := NewGroup(context.Background(), GroupInput{Name: "test-logger"})
	g.Go(context.Background(), func(ctx context.Context) error {
		panic("logged panic")
	})
	g.Wait()

	logged := out.String()
	for _, want := range []string{"forked task", "task panicked", "last running task exited", "status=Panicked", "runner=test-logger"} {
		if !strings.Contains(logged, want) {
			t.Errorf("Expected the log to contain %q, got:\n%s", want, logged)
		}
	}
}
