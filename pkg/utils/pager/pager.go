// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package pager provides combinators over [runtime.Pager] values.
//
// The pagers returned by this package are lazy. No page is fetched until the
// consumer asks for it, and each page fetched by the consumer results in
// exactly one page being fetched from the underlying pager. Like the
// underlying [runtime.Pager] they are not safe for concurrent use.
package pager

import (
	"context"
	"iter"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
)

// Map returns a new [runtime.Pager], which yields the pages of inner
// transformed by f.
//
// Paging boundaries of inner are preserved. Errors returned by inner are
// returned unchanged and f is not called for failed pages.
func Map[In, Out any](inner *runtime.Pager[In], f func(In) Out) *runtime.Pager[Out] {
	handler := runtime.PagingHandler[Out]{
		More: func(Out) bool {
			return inner.More()
		},
		Fetcher: func(ctx context.Context, _ *Out) (Out, error) {
			page, err := inner.NextPage(ctx)
			if err != nil {
				var zero Out
				return zero, err
			}

			return f(page), nil
		},
	}

	return runtime.NewPager(handler)
}

// MapSlice calls f for each item and returns the results in the same order.
// A nil slice yields a nil result.
func MapSlice[In, Out any](items []In, f func(In) Out) []Out {
	if items == nil {
		return nil
	}

	result := make([]Out, 0, len(items))
	for _, item := range items {
		result = append(result, f(item))
	}

	return result
}

// Items returns an iterator over the individual items of the pages provided
// by inner. The items of a page are extracted using the items function, and
// each item is transformed by f right before it is yielded.
//
// The next page is fetched only after the consumer has advanced past the last
// item of the current page. When fetching a page fails, the error is yielded
// once along with the zero value of Out, and the iteration stops.
func Items[P, E, Out any](ctx context.Context, inner *runtime.Pager[P], items func(P) []E, f func(E) Out) iter.Seq2[Out, error] {
	return func(yield func(Out, error) bool) {
		for inner.More() {
			page, err := inner.NextPage(ctx)
			if err != nil {
				var zero Out
				yield(zero, err)
				return
			}

			for _, item := range items(page) {
				if !yield(f(item), nil) {
					return
				}
			}
		}
	}
}
