package planner

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

// CanonicalPayload produces a stable serialization of a raw payload for
// seeding. JSON payloads are re-marshalled through Go maps so object keys
// come out sorted regardless of their order in the input; anything that is
// not JSON (e.g. a bare URL) is used as its trimmed literal text.
func CanonicalPayload(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return trimmed
	}
	out, err := json.Marshal(v)
	if err != nil {
		return trimmed
	}
	return string(out)
}

// Seed derives the deterministic plan seed from the canonical payload text
// and the week's Monday. xxh3 is run-stable, so the same inputs produce the
// same seed in any process at any time; the whole planner's reproducibility
// hangs on that.
func Seed(canonicalPayload string, weekStart time.Time) uint64 {
	return xxh3.HashString(canonicalPayload + weekStart.Format("2006-01-02"))
}
