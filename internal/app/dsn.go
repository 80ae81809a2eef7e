package app

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 512

// NormalizeDBURL fills connection parameters the worker relies on. Values already
// present in raw are kept.
func NormalizeDBURL(raw, applicationName string, disablePreparedBinaryResult bool) string {
	params := map[string]string{}
	if applicationName != "" {
		params["application_name"] = applicationName
	}
	if disablePreparedBinaryResult {
		params["disable_prepared_binary_result"] = "yes"
	}
	if len(params) == 0 {
		return raw
	}

	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		query := parsed.Query()
		for key, value := range params {
			if query.Get(key) == "" {
				query.Set(key, value)
			}
		}
		parsed.RawQuery = query.Encode()
		return parsed.String()
	}

	// key=value DSN
	present := dsnKeys(trimmed)
	out := trimmed
	for _, key := range []string{"application_name", "disable_prepared_binary_result"} {
		value, ok := params[key]
		if !ok || present[key] {
			continue
		}
		out += " " + key + "=" + value
	}
	return out
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, token := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

func dsnKeys(dsn string) map[string]bool {
	keys := make(map[string]bool)
	for _, token := range strings.Fields(dsn) {
		if key, _, ok := strings.Cut(token, "="); ok {
			keys[key] = true
		}
	}
	return keys
}

// formatDBQueryForTrace collapses whitespace and caps the statement recorded on spans.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(normalized[cut]) {
		cut--
	}
	return normalized[:cut] + "..."
}
