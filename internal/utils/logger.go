package utils

import (
	"log"
	"strings"
)

// LogEvent writes one standardized line per domain event, tied to the request
// that caused it. Keep message short and free of credentials or tokens.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
