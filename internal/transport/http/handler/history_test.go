package handler

import (
	"testing"

	"github.com/oklog/ulid/v2"

	"studymate/internal/app"
)

func TestResolveRecordHandle(t *testing.T) {
	id := ulid.Make().String()

	tests := []struct {
		name string
		raw  string
		want app.RecordHandle
		ok   bool
	}{
		{"ulid", id, app.HandleByID(id), true},
		{"position zero", "0", app.HandleByPosition(0), true},
		{"position", "7", app.HandleByPosition(7), true},
		{"negative position", "-1", app.RecordHandle{}, false},
		{"garbage", "not-a-handle", app.RecordHandle{}, false},
		{"empty", "", app.RecordHandle{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveRecordHandle(tt.raw)
			if ok != tt.ok {
				t.Fatalf("resolveRecordHandle(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("resolveRecordHandle(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
