package fanout

import (
	"context"
	"errors"
	"testing"

	"letsgo/internal/passenger/domain"
)

type countingPresenter struct {
	renders, notifies, dismisses int
	err                          error
}

func (c *countingPresenter) Render(context.Context, string, domain.Snapshot) error {
	c.renders++
	return c.err
}

func (c *countingPresenter) Notify(context.Context, string, domain.Notification) error {
	c.notifies++
	return c.err
}

func (c *countingPresenter) Dismiss(context.Context, string, string) error {
	c.dismisses++
	return c.err
}

func TestPresenter_ReachesAllTargetsDespiteErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	a, b := &countingPresenter{err: boom}, &countingPresenter{}
	p := New(a, b)
	ctx := context.Background()

	if err := p.Render(ctx, "d", domain.Snapshot{}); !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	_ = p.Notify(ctx, "d", domain.Notification{})
	if err := New(b).Dismiss(ctx, "d", "n"); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if a.renders != 1 || b.renders != 1 || a.notifies != 1 || b.notifies != 1 || b.dismisses != 1 {
		t.Fatalf("a=%+v b=%+v", a, b)
	}
}
