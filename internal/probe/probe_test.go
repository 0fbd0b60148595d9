package probe

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakePinger struct {
	delay time.Duration
	err   error
}

func (f fakePinger) Ping(ctx context.Context) error {
	select {
	case <-time.After(f.delay):
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestBoth_BothHealthy(t *testing.T) {
	p, s := Both(context.Background(), fakePinger{}, fakePinger{}, time.Second)
	if !p.OK || !s.OK {
		t.Fatalf("p=%+v s=%+v, want both OK", p, s)
	}
}

func TestBoth_OneUnhealthyDoesNotBlockOther(t *testing.T) {
	errPing := errors.New("ping failed")
	p, s := Both(context.Background(), fakePinger{err: errPing}, fakePinger{}, time.Second)
	if p.OK {
		t.Fatal("primary reported OK despite returning an error")
	}
	if !errors.Is(p.Err, errPing) {
		t.Fatalf("p.Err = %v, want errPing", p.Err)
	}
	if !s.OK {
		t.Fatal("secondary reported unhealthy though it had no error")
	}
}

func TestBoth_SlowStoreTimesOutWithoutBlockingFastStore(t *testing.T) {
	start := time.Now()
	p, s := Both(context.Background(), fakePinger{delay: time.Hour}, fakePinger{}, 50*time.Millisecond)
	elapsed := time.Since(start)

	if p.OK {
		t.Fatal("slow primary reported OK")
	}
	if !s.OK {
		t.Fatal("fast secondary reported unhealthy")
	}
	if elapsed > time.Second {
		t.Fatalf("Both took %v, want bounded close to the 50ms timeout", elapsed)
	}
}

func TestBoth_BothSlowBothTimeOut(t *testing.T) {
	p, s := Both(context.Background(), fakePinger{delay: time.Hour}, fakePinger{delay: time.Hour}, 20*time.Millisecond)
	if p.OK || s.OK {
		t.Fatalf("p=%+v s=%+v, want both not OK", p, s)
	}
}
