package report

import "github.com/atotto/clipboard"

// SetupRules is the remediation snippet shared with whoever administers the
// record store when the subscription is blocked by permissions.
const SetupRules = `-- Grant the profiler service access to the record collection:
GRANT SELECT, INSERT, UPDATE, DELETE ON patient_records TO profiler;
-- Then reload the app once the grant is in place.`

// Clipboard is the fire-and-forget copy collaborator; no acknowledgment is
// modeled.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard copies to the host clipboard.
type SystemClipboard struct{}

var _ Clipboard = SystemClipboard{}

func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}
