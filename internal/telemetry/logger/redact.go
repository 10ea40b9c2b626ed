package logger

import (
	"log/slog"
	"strings"
)

// Attribute names whose values are secrets.
var sensitiveKeyPatterns = []string{
	"secret",
	"token",
	"key",
	"password",
}

const redactedValue = "***REDACTED***"

// redactSensitive masks string attributes whose name marks them as secret.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		if IsSensitiveKey(a.Key) {
			return slog.String(a.Key, MaskValue(a.Value.String()))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		masked := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			masked[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}
	return a
}

// MaskValue keeps the first and last three characters of a secret so that
// it can still be matched against a listing. Short values are fully hidden.
func MaskValue(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 12 {
		return redactedValue
	}
	return value[:3] + "..." + value[len(value)-3:]
}

// IsSensitiveKey checks if an attribute name suggests secret content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
