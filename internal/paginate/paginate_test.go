package paginate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectAll_SinglePage(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, cursor string) (Page[int], error) {
		calls++
		require.Empty(t, cursor, "first call carries no cursor")
		return Page[int]{Items: []int{1, 2, 3}}, nil
	}

	items, err := CollectAll(context.Background(), fetch, 5)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, items)
	require.Equal(t, 1, calls)
}

func TestCollectAll_ThreadsCursor(t *testing.T) {
	var cursors []string
	fetch := func(ctx context.Context, cursor string) (Page[string], error) {
		cursors = append(cursors, cursor)
		switch cursor {
		case "":
			return Page[string]{Items: []string{"a"}, HasNextPage: true, EndCursor: "c1"}, nil
		case "c1":
			return Page[string]{Items: []string{"b"}, HasNextPage: true, EndCursor: "c2"}, nil
		default:
			return Page[string]{Items: []string{"c"}}, nil
		}
	}

	items, err := CollectAll(context.Background(), fetch, 5)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, items)
	require.Equal(t, []string{"", "c1", "c2"}, cursors)
}

func TestCollectAll_CapAgainstRunawayCursor(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, cursor string) (Page[int], error) {
		calls++
		return Page[int]{Items: []int{calls}, HasNextPage: true, EndCursor: fmt.Sprintf("c%d", calls)}, nil
	}

	items, err := CollectAll(context.Background(), fetch, 3)
	require.NoError(t, err)
	require.Equal(t, 3, calls, "never fetches beyond maxPages")
	require.Equal(t, []int{1, 2, 3}, items)
}

func TestCollectAll_StopsOnMissingCursor(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, cursor string) (Page[int], error) {
		calls++
		// hasNextPage claims more, but the cursor is absent.
		return Page[int]{Items: []int{calls}, HasNextPage: true}, nil
	}

	items, err := CollectAll(context.Background(), fetch, 5)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
	require.Equal(t, []int{1}, items)
}

func TestCollectAll_PropagatesError(t *testing.T) {
	wantErr := errors.New("page 2 failed")
	fetch := func(ctx context.Context, cursor string) (Page[int], error) {
		if cursor == "" {
			return Page[int]{Items: []int{1}, HasNextPage: true, EndCursor: "c1"}, nil
		}
		return Page[int]{}, wantErr
	}

	_, err := CollectAll(context.Background(), fetch, 5)
	require.Same(t, wantErr, err)
}

func TestCollectAll_DefaultMaxPages(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, cursor string) (Page[int], error) {
		calls++
		return Page[int]{HasNextPage: true, EndCursor: "x"}, nil
	}

	_, err := CollectAll(context.Background(), fetch, 0)
	require.NoError(t, err)
	require.Equal(t, DefaultMaxPages, calls)
}
