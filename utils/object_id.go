package utils

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDHex normalizes the shapes a document reference can arrive in (a raw
// ObjectID, a pointer, an already-hex string) to a plain hex string so that
// ownership checks always compare like with like. Zero and nil references
// normalize to "".
func IDHex(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		if id.IsZero() {
			return ""
		}
		return id.Hex()
	case *primitive.ObjectID:
		if id == nil || id.IsZero() {
			return ""
		}
		return id.Hex()
	case string:
		return id
	case fmt.Stringer:
		return id.String()
	default:
		return ""
	}
}
