package backends

import (
	"context"
	"net/http"
)

// LibRead is FreeWebNovel served from another domain: identical markup,
// separate decoy corpus keyed by its own site name.
func newLibRead(ctx context.Context, client *http.Client, url string) (Backend, error) {
	return newFWNLayout(ctx, client, libReadName, url)
}
