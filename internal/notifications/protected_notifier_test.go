package notifications

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubNotifier struct {
	err   error
	calls int
}

func (s *stubNotifier) SendRegistrationConfirmation(ctx context.Context, in RegistrationConfirmation) error {
	s.calls++
	return s.err
}

func (s *stubNotifier) SendContactReceipt(ctx context.Context, in ContactReceipt) error {
	s.calls++
	return s.err
}

func TestProtectedNotifierOpensAfterThreshold(t *testing.T) {
	stub := &stubNotifier{err: errors.New("provider down")}

	pn := NewProtectedNotifier(stub, ProtectedNotifierConfig{
		FailureThreshold: 2,
		Cooldown:         time.Hour,
	})

	ctx := context.Background()
	in := RegistrationConfirmation{Email: "a@b.pl"}

	for i := 0; i < 2; i++ {
		if err := pn.SendRegistrationConfirmation(ctx, in); err == nil {
			t.Fatalf("expected provider error")
		}
	}

	// circuit now open: no call reaches the inner notifier
	err := pn.SendRegistrationConfirmation(ctx, in)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if stub.calls != 2 {
		t.Fatalf("expected 2 inner calls, got %d", stub.calls)
	}
}

func TestProtectedNotifierClosesAfterSuccess(t *testing.T) {
	stub := &stubNotifier{err: errors.New("flaky")}

	pn := NewProtectedNotifier(stub, ProtectedNotifierConfig{
		FailureThreshold: 2,
		Cooldown:         time.Nanosecond,
	})

	ctx := context.Background()
	in := ContactReceipt{Email: "a@b.pl"}

	_ = pn.SendContactReceipt(ctx, in)
	_ = pn.SendContactReceipt(ctx, in)

	// cooldown elapses, half-open trial succeeds and recloses the circuit
	time.Sleep(time.Millisecond)
	stub.err = nil

	if err := pn.SendContactReceipt(ctx, in); err != nil {
		t.Fatalf("half-open trial failed: %v", err)
	}
	if err := pn.SendContactReceipt(ctx, in); err != nil {
		t.Fatalf("closed circuit rejected call: %v", err)
	}
}
