package netpool

import (
	"context"
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jasonkayzk/preconnect/channel_pool/errs"
	"github.com/jasonkayzk/preconnect/warmup"
	"github.com/sirupsen/logrus/hooks/test"
)

func tcpServer(t *testing.T) (string, *int32) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %s", err)
	}
	t.Cleanup(func() { l.Close() })

	var accepted int32
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			atomic.AddInt32(&accepted, 1)
			go func() {
				_, _ = io.Copy(io.Discard, conn)
				conn.Close()
			}()
		}
	}()
	return l.Addr().String(), &accepted
}

func TestWarm_TCP(t *testing.T) {
	addr, accepted := tcpServer(t)

	p, err := Dial(context.Background(), addr, 5, time.Second)
	if err != nil {
		t.Fatalf("Dial error: %s", err)
	}
	defer p.Close()

	logger, _ := test.NewNullLogger()
	if err := warmup.Warm(p, warmup.WithLogger(logger)); err != nil {
		t.Fatalf("Warm error: %s", err)
	}

	if p.Len() != 4 {
		t.Errorf("Len() = %d, want 4", p.Len())
	}

	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt32(accepted) < 4 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := atomic.LoadInt32(accepted); n != 4 {
		t.Errorf("server accepted %d connections, want 4", n)
	}
}

func TestWarm_Refused(t *testing.T) {
	l, _ := net.Listen("tcp", "127.0.0.1:0")
	addr := l.Addr().String()
	l.Close()

	p, err := Dial(context.Background(), addr, 3, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("Dial error: %s", err)
	}
	defer p.Close()

	logger, _ := test.NewNullLogger()
	err = warmup.Warm(p, warmup.WithLogger(logger))

	if index, ok := errs.WarmupFailedIndex(err); !ok || index != 0 {
		t.Fatalf("expected WarmupFailedErr at index 0, got %v", err)
	}
	if !errs.IsConnectionErr(err) {
		t.Errorf("expected ConnectionErr cause, got %v", err)
	}
}

func TestGet_Closed(t *testing.T) {
	addr, _ := tcpServer(t)
	p, _ := Dial(context.Background(), addr, 2, time.Second)
	p.Close()

	if _, err := p.Get(); !errs.IsClosedErr(err) {
		t.Errorf("expected ClosedErr, got %v", err)
	}
}

func TestWarm_ContextCancelled(t *testing.T) {
	addr, accepted := tcpServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := Dial(ctx, addr, 3, time.Second)
	if err != nil {
		t.Fatalf("Dial error: %s", err)
	}
	defer p.Close()

	logger, _ := test.NewNullLogger()
	err = warmup.Warm(p, warmup.WithLogger(logger))

	if index, ok := errs.WarmupFailedIndex(err); !ok || index != 0 {
		t.Fatalf("expected WarmupFailedErr at index 0, got %v", err)
	}
	if n := atomic.LoadInt32(accepted); n != 0 {
		t.Errorf("server accepted %d connections, want 0", n)
	}
}
