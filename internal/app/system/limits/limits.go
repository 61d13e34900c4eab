// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize is the maximum size for JSON request bodies.
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxPostFormSize is the in-memory budget for post creation
	// multipart forms. Larger media parts spill to temp files.
	MaxPostFormSize = 32 << 20 // 32 MB

	// MaxImageFormSize is the in-memory budget for single-image forms
	// (community covers, profile pictures).
	MaxImageFormSize = 8 << 20 // 8 MB
)
