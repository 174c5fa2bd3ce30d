package auditlog

import "strings"

// Redact replaces every occurrence of the given secrets in detail with
// a placeholder before the text is persisted. Empty secrets are
// ignored.
func Redact(detail string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		detail = strings.ReplaceAll(detail, secret, "<redacted>")
	}
	return detail
}
