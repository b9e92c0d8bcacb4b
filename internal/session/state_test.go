package session

import (
	"errors"
	"testing"
)

func TestState_MatchInvokesExactlyOneBranch(t *testing.T) {
	cases := []struct {
		name  string
		state State[int]
		want  string
	}{
		{"loading", NewLoading[int](), "loading"},
		{"success", NewSuccess(42), "success"},
		{"failed", NewFailure[int](errors.New("boom")), "failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			tc.state.Match(
				func() { got = "loading" },
				func(v int) {
					got = "success"
					if v != 42 {
						t.Errorf("value = %d; want 42", v)
					}
				},
				func(err error) {
					got = "failed"
					if err == nil {
						t.Error("failure branch received nil error")
					}
				},
			)
			if got != tc.want {
				t.Errorf("branch = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestState_Accessors(t *testing.T) {
	s := NewSuccess("hello")
	if s.Phase() != Success {
		t.Errorf("Phase = %v; want Success", s.Phase())
	}
	if v, ok := s.Value(); !ok || v != "hello" {
		t.Errorf("Value = %q, %v; want hello, true", v, ok)
	}
	if s.Err() != nil {
		t.Errorf("Err = %v; want nil", s.Err())
	}

	wantErr := errors.New("boom")
	f := NewFailure[string](wantErr)
	if f.Err() != wantErr {
		t.Errorf("Err = %v; want %v", f.Err(), wantErr)
	}
	if _, ok := f.Value(); ok {
		t.Error("Value ok = true on Failed state")
	}

	l := NewLoading[string]()
	if l.Phase() != Loading {
		t.Errorf("Phase = %v; want Loading", l.Phase())
	}
}
