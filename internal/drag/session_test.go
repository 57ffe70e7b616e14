package drag

import (
	"testing"
)

type completion struct{ moved, target int }

type recorder struct {
	calls []completion
}

func (r *recorder) GestureComplete(moved, target int) {
	r.calls = append(r.calls, completion{moved, target})
}

func TestSession_ManyMovesThenEndCompletesOnce(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := NewSession[int](rec)

	if !s.Start(1) {
		t.Fatalf("expected start to be accepted")
	}
	for i := 0; i < 50; i++ {
		s.Move(1 + i%3)
		if i%7 == 0 {
			s.MoveNone()
		}
	}
	if len(rec.calls) != 0 {
		t.Fatalf("move must never complete; got %d calls", len(rec.calls))
	}
	if got := s.End(3, true); got != EndCompleted {
		t.Fatalf("End = %v", got)
	}
	if len(rec.calls) != 1 || rec.calls[0] != (completion{1, 3}) {
		t.Fatalf("expected one completion (1,3); got %+v", rec.calls)
	}
	if s.Phase() != Idle {
		t.Fatalf("expected idle after end; got %v", s.Phase())
	}
	if _, ok := s.Over(); ok {
		t.Fatalf("hover target should be cleared")
	}
}

func TestSession_EndWithoutTargetOrOnSelfDiscards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		over    int
		hasOver bool
	}{
		{name: "dropped outside list", hasOver: false},
		{name: "dropped on origin", over: 2, hasOver: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := &recorder{}
			s := NewSession[int](rec)
			s.Start(2)
			s.Move(3)
			if got := s.End(tt.over, tt.hasOver); got != EndDiscarded {
				t.Fatalf("End = %v; want discarded", got)
			}
			if len(rec.calls) != 0 {
				t.Fatalf("expected no completion; got %+v", rec.calls)
			}
			if s.Phase() != Idle {
				t.Fatalf("expected idle; got %v", s.Phase())
			}
		})
	}
}

func TestSession_StartWhileActiveIsIgnored(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := NewSession[int](rec)
	s.Start(1)
	if s.Start(2) {
		t.Fatalf("second start must be refused")
	}
	if id, _ := s.Active(); id != 1 {
		t.Fatalf("active id changed to %d", id)
	}
	s.End(3, true)
	if len(rec.calls) != 1 || rec.calls[0].moved != 1 {
		t.Fatalf("expected completion for the original gesture; got %+v", rec.calls)
	}
}

func TestSession_CancelNeverCompletes(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := NewSession[int](rec)
	s.Start(1)
	s.Move(3)
	if !s.Cancel() {
		t.Fatalf("expected cancel to report an active gesture")
	}
	if s.End(3, true) != EndIgnored {
		t.Fatalf("end after cancel must be ignored")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected no completion; got %+v", rec.calls)
	}
	if s.Cancel() {
		t.Fatalf("cancel while idle should report false")
	}
}

func TestSession_IdleIgnoresMoveAndEnd(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := NewSession[int](rec)
	s.Move(2)
	if _, ok := s.Over(); ok {
		t.Fatalf("move while idle must not set a target")
	}
	if s.End(2, true) != EndIgnored {
		t.Fatalf("end while idle must be ignored")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("unexpected completions: %+v", rec.calls)
	}
}

func TestSession_SettlingDuringCompletion(t *testing.T) {
	t.Parallel()

	var s *Session[int]
	var phase Phase
	s = NewSession[int](CompleterFunc[int](func(moved, target int) {
		phase = s.Phase()
		if s.Start(9) {
			t.Errorf("start during settling must be refused")
		}
	}))
	s.Start(1)
	s.End(2, true)
	if phase != Settling {
		t.Fatalf("expected settling inside completer; got %v", phase)
	}
	if s.Phase() != Idle {
		t.Fatalf("expected idle afterwards; got %v", s.Phase())
	}
}

func TestSession_IsOverlay(t *testing.T) {
	t.Parallel()

	s := NewSession[int](nil)
	if s.IsOverlay(0) {
		t.Fatalf("zero id must not be overlaid while idle")
	}
	s.Start(4)
	if !s.IsOverlay(4) || s.IsOverlay(5) {
		t.Fatalf("IsOverlay mismatch")
	}
}

func TestSession_Dispatch(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := NewSession[int](rec)
	for _, ev := range []Event[int]{
		startEvent(1),
		moveEvent(2, true),
		moveEvent(0, false),
		moveEvent(3, true),
		endEvent(3, true),
	} {
		if !s.Dispatch(ev) {
			t.Fatalf("event %v refused", ev.Kind)
		}
	}
	if s.Dispatch(moveEvent(2, true)) || s.Dispatch(endEvent(2, true)) {
		t.Fatalf("idle session must refuse move and end")
	}
	s.Dispatch(startEvent(4))
	if s.Dispatch(startEvent(5)) {
		t.Fatalf("second start must be refused")
	}
	if len(rec.calls) != 1 || rec.calls[0] != (completion{1, 3}) {
		t.Fatalf("unexpected completions: %+v", rec.calls)
	}
}
