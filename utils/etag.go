package utils

import (
	"crypto/sha1"
	"fmt"
	"time"
)

// GenerateETag derives a strong ETag from a record's id and last update time.
func GenerateETag(id string, updatedAt time.Time) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s-%d", id, updatedAt.UnixNano())))
	return fmt.Sprintf(`"%x"`, sum[:8])
}
