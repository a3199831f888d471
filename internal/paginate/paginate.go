// Package paginate accumulates cursor-paginated result sets into a single
// in-memory sequence, bounded by a page-count ceiling.
package paginate

import "context"

// DefaultMaxPages caps how many pages CollectAll fetches. The cap is a
// safety valve against a runaway or buggy upstream cursor chain, not part
// of the remote API contract.
const DefaultMaxPages = 5

// Page is one slice of a cursor-paginated listing. EndCursor is an opaque
// token minted by the remote API; it is threaded forward, never inspected.
type Page[T any] struct {
	Items       []T
	HasNextPage bool
	EndCursor   string
}

// FetchFunc returns the page following cursor. An empty cursor requests
// the first page.
type FetchFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// CollectAll repeatedly invokes fetch, threading each page's EndCursor into
// the next call, until the upstream reports no further pages, omits the
// cursor, or maxPages pages have been fetched. A non-positive maxPages
// falls back to DefaultMaxPages.
func CollectAll[T any](ctx context.Context, fetch FetchFunc[T], maxPages int) ([]T, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var items []T
	cursor := ""
	for fetched := 0; fetched < maxPages; fetched++ {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if !page.HasNextPage || page.EndCursor == "" {
			break
		}
		cursor = page.EndCursor
	}
	return items, nil
}
