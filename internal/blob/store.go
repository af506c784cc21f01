// Package blob provides blob storage for generated images. Paths are
// deterministic ({carouselId}/{kind}_{position}.png) so re-running a stage
// overwrites rather than duplicates.
package blob

import (
	"context"
	"fmt"
)

// Image kinds used in storage keys.
const (
	KindBackground = "bg"
	KindPreview    = "preview"
	KindHires      = "hires"
)

// Store persists image bytes under a key and returns a public URL.
type Store interface {
	// Put writes data at key, replacing any existing object, and returns
	// the public URL of the stored object.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Key builds the deterministic storage key for one slide image.
func Key(carouselID, kind string, position int) string {
	return fmt.Sprintf("%s/%s_%d.png", carouselID, kind, position)
}
