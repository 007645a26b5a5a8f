package client

import "context"

// ListPage is one page of a cursor-paginated list operation.
type ListPage[T any] struct {
	// Items are the records of this page, in API order.
	Items []T

	// After is the cursor of the next page; empty means the list is
	// exhausted.
	After string
}

// ListFunc fetches one page of a list operation for the given cursor. The
// first call receives an empty cursor.
type ListFunc[T any] func(ctx context.Context, after string) (ListPage[T], error)

// Paginator iterates a cursor-paginated list operation item by item,
// fetching pages lazily. It treats each page fetch as an opaque single call,
// so the usual retry and error classification apply per page.
//
//	p := client.NewPaginator(func(ctx context.Context, after string) (client.ListPage[Payment], error) {
//	    return listPayments(ctx, after)
//	})
//	for p.Next(ctx) {
//	    handle(p.Item())
//	}
//	if err := p.Err(); err != nil {
//	    return err
//	}
//
// Not safe for concurrent use.
type Paginator[T any] struct {
	list    ListFunc[T]
	after   string
	items   []T
	pos     int
	done    bool
	err     error
	current T
}

// NewPaginator creates a paginator over a list operation.
func NewPaginator[T any](list ListFunc[T]) *Paginator[T] {
	return &Paginator[T]{list: list}
}

// Next advances to the next item, fetching the next page when the current
// one is drained. It returns false when the list is exhausted or a page
// fetch failed; check Err afterwards.
func (p *Paginator[T]) Next(ctx context.Context) bool {
	if p.err != nil {
		return false
	}

	for p.pos >= len(p.items) {
		if p.done {
			return false
		}
		page, err := p.list(ctx, p.after)
		if err != nil {
			p.err = err
			return false
		}
		p.items = page.Items
		p.pos = 0
		p.after = page.After
		if page.After == "" {
			p.done = true
		}
	}

	p.current = p.items[p.pos]
	p.pos++
	return true
}

// Item returns the item Next advanced to.
func (p *Paginator[T]) Item() T { return p.current }

// Err returns the first page-fetch error, if any.
func (p *Paginator[T]) Err() error { return p.err }
