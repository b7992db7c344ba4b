package realtime

import (
	"strings"
)

// safeKeyReplacer covers every character the realtime database forbids in a
// key. The same mapping must be used for writes and reads of a path or the
// two ends address different subtrees.
var safeKeyReplacer = strings.NewReplacer(
	".", "_",
	"#", "_",
	"$", "_",
	"/", "_",
	"[", "_",
	"]", "_",
)

// SafeKey sanitizes a phone number or email into a database-safe key.
func SafeKey(s string) string {
	return safeKeyReplacer.Replace(s)
}
