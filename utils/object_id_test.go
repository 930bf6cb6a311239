package utils

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIDHex(t *testing.T) {
	id := primitive.NewObjectID()
	var zero primitive.ObjectID

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, ""},
		{"object id", id, id.Hex()},
		{"zero object id", zero, ""},
		{"pointer", &id, id.Hex()},
		{"nil pointer", (*primitive.ObjectID)(nil), ""},
		{"zero pointer", &zero, ""},
		{"string", id.Hex(), id.Hex()},
		{"unsupported type", 42, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IDHex(tt.in); got != tt.want {
				t.Errorf("IDHex(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIDHexMatchesAcrossShapes(t *testing.T) {
	id := primitive.NewObjectID()
	if IDHex(id) != IDHex(&id) || IDHex(id) != IDHex(id.Hex()) {
		t.Error("the same reference must normalize identically across shapes")
	}
}
