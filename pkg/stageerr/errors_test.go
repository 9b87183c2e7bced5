package stageerr

import (
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsFatal(t *testing.T) {
	err := MissingInput([]string{"cache"})
	if !IsFatal(err) {
		t.Error("expected MissingInput to be fatal")
	}
	if IsFatal(errors.New("plain error")) {
		t.Error("expected a plain error to not be fatal")
	}
}

func TestAs(t *testing.T) {
	err := IncompatibleVersion("ctrl", "0.4.0", "p1", "0.3.0")
	se, ok := As(err)
	if !ok {
		t.Fatal("expected As to extract a *StageError")
	}
	if se.Kind != KindIncompatibleVersion {
		t.Errorf("Kind = %v, want %v", se.Kind, KindIncompatibleVersion)
	}
	if se.Fields["participant"] != "p1" {
		t.Errorf("Fields[participant] = %q, want %q", se.Fields["participant"], "p1")
	}
}

func TestGRPCStatus(t *testing.T) {
	err := MissingControllerVersion("ctrl", nil)
	st, ok := status.FromError(err)
	if !ok {
		t.Fatal("expected status.FromError to recognize a *StageError")
	}
	if st.Code() != codes.FailedPrecondition {
		t.Errorf("code = %v, want %v", st.Code(), codes.FailedPrecondition)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := MissingControllerVersion("ctrl", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to see through StageError to its cause")
	}
}
