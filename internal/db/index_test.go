package db

import (
	"errors"
	"testing"
)

func TestWriteAck_Applied(t *testing.T) {
	tests := []struct {
		name string
		ack  WriteAck
		want bool
	}{
		{"created", WriteAck{Result: "created", Shards: Shards{Total: 2, Successful: 1}}, true},
		{"updated", WriteAck{Result: "updated", Shards: Shards{Total: 1, Successful: 1}}, true},
		{"deleted", WriteAck{Result: "deleted", Shards: Shards{Total: 1, Successful: 1}}, true},
		{"no shard report", WriteAck{Result: "created"}, true},
		{"zero successful", WriteAck{Result: "created", Shards: Shards{Total: 2, Failed: 2}}, false},
		{"noop", WriteAck{Result: "noop", Shards: Shards{Total: 1, Successful: 1}}, false},
		{"not found", WriteAck{Result: "not_found", Shards: Shards{Total: 1, Successful: 1}}, false},
		{"empty", WriteAck{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ack.Applied(); got != tc.want {
				t.Errorf("Applied() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExistence_String(t *testing.T) {
	if Present.String() != "present" {
		t.Errorf("Present.String() = %q", Present.String())
	}
	if Absent.String() != "absent" {
		t.Errorf("Absent.String() = %q", Absent.String())
	}
}

func TestError_Format(t *testing.T) {
	withStatus := &Error{Op: OpIndexExists, Status: 503, Err: ErrUnexpectedStatus}
	if withStatus.Error() != "indices.exists [503]: db: unexpected status" {
		t.Errorf("unexpected message: %q", withStatus.Error())
	}

	noStatus := &Error{Op: OpSearch, Err: errors.New("dial tcp: refused")}
	if noStatus.Error() != "search: dial tcp: refused" {
		t.Errorf("unexpected message: %q", noStatus.Error())
	}

	if !errors.Is(withStatus, ErrUnexpectedStatus) {
		t.Error("expected errors.Is to unwrap to ErrUnexpectedStatus")
	}
}
