package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Dark-Zeus/auto-connect-sub001/utils"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusInProgress, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []BookingStatus{StatusCompleted, StatusRejected, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range ActiveStatuses {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestApplyTransition_ConfirmAutoStartsWork(t *testing.T) {
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	b := Booking{Status: StatusPending}

	if err := b.ApplyTransition(StatusConfirmed, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusInProgress {
		t.Fatalf("status = %s, want in_progress", b.Status)
	}
	if b.ConfirmedAt == nil || !b.ConfirmedAt.Equal(now) {
		t.Fatalf("confirmed_at not stamped: %v", b.ConfirmedAt)
	}
	if b.StartedAt == nil || !b.StartedAt.Equal(now) {
		t.Fatalf("started_at not stamped: %v", b.StartedAt)
	}
}

func TestApplyTransition_CompleteStampsTimestamp(t *testing.T) {
	now := time.Date(2026, 9, 7, 16, 30, 0, 0, time.UTC)
	b := Booking{Status: StatusInProgress}

	if err := b.ApplyTransition(StatusCompleted, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", b.Status)
	}
	if b.CompletedAt == nil || !b.CompletedAt.Equal(now) {
		t.Fatalf("completed_at not stamped: %v", b.CompletedAt)
	}
}

func TestApplyTransition_IllegalReturnsStateError(t *testing.T) {
	b := Booking{Status: StatusPending}
	err := b.ApplyTransition(StatusCompleted, time.Now())
	if err == nil {
		t.Fatal("expected error for pending -> completed")
	}
	stateErr, ok := err.(*utils.StateError)
	if !ok {
		t.Fatalf("expected *utils.StateError, got %T", err)
	}
	if stateErr.Current != "pending" {
		t.Fatalf("state error current = %q, want pending", stateErr.Current)
	}
	if b.Status != StatusPending {
		t.Fatalf("failed transition mutated status to %s", b.Status)
	}
	if b.CompletedAt != nil {
		t.Fatal("failed transition stamped a timestamp")
	}
}

func TestApplyTransition_TerminalStatesAreFrozen(t *testing.T) {
	for _, terminal := range []BookingStatus{StatusCompleted, StatusRejected, StatusCancelled} {
		for _, next := range []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusRejected, StatusCancelled} {
			b := Booking{Status: terminal}
			if err := b.ApplyTransition(next, time.Now()); err == nil {
				t.Errorf("expected error for %s -> %s", terminal, next)
			}
		}
	}
}

func TestApplyTransition_CancelStampsTimestamp(t *testing.T) {
	now := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	b := Booking{Status: StatusPending}
	if err := b.ApplyTransition(StatusCancelled, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
		t.Fatalf("cancelled_at not stamped: %v", b.CancelledAt)
	}
}

func TestConflictOnDuplicate(t *testing.T) {
	// Two racing creates for the same slot: neither probe sees the other's
	// uncommitted insert, so the loser is rejected by the unique index and
	// must still come back as a conflict, not a bare storage error.
	raw := fmt.Errorf("insert bookings: %w", gorm.ErrDuplicatedKey)
	err := ConflictOnDuplicate(raw, "time slot", "already booked, pick another slot")

	var conflict *utils.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *utils.ConflictError, got %T: %v", err, err)
	}
	if conflict.Resource != "time slot" {
		t.Fatalf("resource = %q, want time slot", conflict.Resource)
	}
	if got := utils.StatusCode(err); got != 409 {
		t.Fatalf("StatusCode = %d, want 409", got)
	}
}

func TestConflictOnDuplicate_PassesThroughOtherErrors(t *testing.T) {
	raw := errors.New("connection reset")
	if err := ConflictOnDuplicate(raw, "time slot", "taken"); err != raw {
		t.Fatalf("unrelated error rewritten: %v", err)
	}
	if err := ConflictOnDuplicate(nil, "time slot", "taken"); err != nil {
		t.Fatalf("nil rewritten: %v", err)
	}
	if got := utils.StatusCode(ConflictOnDuplicate(raw, "x", "y")); got != 500 {
		t.Fatalf("StatusCode = %d, want 500", got)
	}
}

func TestCancellableByOwner(t *testing.T) {
	cases := map[BookingStatus]bool{
		StatusPending:    true,
		StatusConfirmed:  true,
		StatusInProgress: false,
		StatusCompleted:  false,
		StatusRejected:   false,
		StatusCancelled:  false,
	}
	for status, want := range cases {
		b := Booking{Status: status}
		if got := b.CancellableByOwner(); got != want {
			t.Errorf("CancellableByOwner(%s) = %v, want %v", status, got, want)
		}
	}
}
