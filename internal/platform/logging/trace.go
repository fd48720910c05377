package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// traceContext is a parsed W3C traceparent header:
// {version}-{trace-id}-{parent-id}-{trace-flags}.
type traceContext struct {
	traceID string
	spanID  string
	sampled bool
}

func isHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// parseTraceparent rejects malformed headers and the all-zero IDs the
// standard marks invalid.
func parseTraceparent(header string) (traceContext, bool) {
	parts := strings.Split(strings.TrimSpace(header), "-")
	if len(parts) != 4 {
		return traceContext{}, false
	}
	version, traceID, spanID, flags := parts[0], parts[1], parts[2], parts[3]
	if len(version) != 2 || len(traceID) != 32 || len(spanID) != 16 || len(flags) != 2 {
		return traceContext{}, false
	}
	if !isHex(version + traceID + spanID + flags) {
		return traceContext{}, false
	}
	if strings.Trim(traceID, "0") == "" || strings.Trim(spanID, "0") == "" {
		return traceContext{}, false
	}
	return traceContext{
		traceID: strings.ToLower(traceID),
		spanID:  strings.ToLower(spanID),
		sampled: hexNibble(flags[1])&1 == 1,
	}, true
}

func hexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func (tc traceContext) resource(projectID string) string {
	return "projects/" + projectID + "/traces/" + tc.traceID
}

// fields are the Cloud Logging trace correlation fields.
func (tc traceContext) fields(projectID string) []zap.Field {
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", tc.resource(projectID)),
		zap.String("logging.googleapis.com/spanId", tc.spanID),
		zap.Bool("logging.googleapis.com/trace_sampled", tc.sampled),
	}
}

var (
	projectMu       sync.RWMutex
	configuredProj  string
	envProjectOnce  sync.Once
	envProjectValue string
)

// SetProjectID sets the project used to build trace resource names. Without
// it the project is read once from the usual Google Cloud variables.
func SetProjectID(id string) {
	projectMu.Lock()
	defer projectMu.Unlock()
	configuredProj = strings.TrimSpace(id)
}

func projectID() string {
	projectMu.RLock()
	id := configuredProj
	projectMu.RUnlock()
	if id != "" {
		return id
	}
	envProjectOnce.Do(func() {
		for _, key := range []string{"FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT"} {
			if v := os.Getenv(key); v != "" {
				envProjectValue = v
				return
			}
		}
	})
	return envProjectValue
}
