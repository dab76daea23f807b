// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package resources_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/gardener/armsingleton/pkg/azure/models"
	"github.com/gardener/armsingleton/pkg/azure/resources"
	azureclients "github.com/gardener/armsingleton/pkg/clients/azure"
	"github.com/gardener/armsingleton/pkg/utils/ptr"
)

type ctxKey struct{}

// call records the arguments of a single call to the fake inner client.
type call struct {
	op       string
	ctx      context.Context
	rg       string
	resource *models.SingletonTrackedResourceInner
}

// fakeInner is an implementation of [resources.InnerClient], which returns
// canned results and records the calls it receives.
type fakeInner struct {
	calls   []call
	record  *models.SingletonTrackedResourceInner
	resp    *models.Response[models.SingletonTrackedResourceInner]
	err     error
	pages   [][]*models.SingletonTrackedResourceInner
	pageErr error
	fetches int
}

var _ resources.InnerClient = &fakeInner{}

func (f *fakeInner) GetByResourceGroup(ctx context.Context, rg string, _ *azureclients.SingletonTrackedResourcesGetOptions) (*models.SingletonTrackedResourceInner, error) {
	f.calls = append(f.calls, call{op: "get", ctx: ctx, rg: rg})
	return f.record, f.err
}

func (f *fakeInner) GetByResourceGroupWithResponse(ctx context.Context, rg string, _ *azureclients.SingletonTrackedResourcesGetOptions) (*models.Response[models.SingletonTrackedResourceInner], error) {
	f.calls = append(f.calls, call{op: "get-with-response", ctx: ctx, rg: rg})
	return f.resp, f.err
}

func (f *fakeInner) CreateOrUpdate(ctx context.Context, rg string, resource *models.SingletonTrackedResourceInner, _ *azureclients.SingletonTrackedResourcesCreateOrUpdateOptions) (*models.SingletonTrackedResourceInner, error) {
	f.calls = append(f.calls, call{op: "create-or-update", ctx: ctx, rg: rg, resource: resource})
	return f.record, f.err
}

func (f *fakeInner) Update(ctx context.Context, rg string, properties *models.SingletonTrackedResourceInner, _ *azureclients.SingletonTrackedResourcesUpdateOptions) (*models.SingletonTrackedResourceInner, error) {
	f.calls = append(f.calls, call{op: "update", ctx: ctx, rg: rg, resource: properties})
	return f.record, f.err
}

func (f *fakeInner) UpdateWithResponse(ctx context.Context, rg string, properties *models.SingletonTrackedResourceInner, _ *azureclients.SingletonTrackedResourcesUpdateOptions) (*models.Response[models.SingletonTrackedResourceInner], error) {
	f.calls = append(f.calls, call{op: "update-with-response", ctx: ctx, rg: rg, resource: properties})
	return f.resp, f.err
}

func (f *fakeInner) NewListByResourceGroupPager(rg string, _ *azureclients.SingletonTrackedResourcesListByResourceGroupOptions) *runtime.Pager[azureclients.SingletonTrackedResourcesListByResourceGroupResponse] {
	f.calls = append(f.calls, call{op: "list", rg: rg})
	type page = azureclients.SingletonTrackedResourcesListByResourceGroupResponse
	index := -1

	return runtime.NewPager(runtime.PagingHandler[page]{
		More: func(page) bool {
			return index+1 < len(f.pages)
		},
		Fetcher: func(ctx context.Context, _ *page) (page, error) {
			f.fetches++
			if ctx.Value(ctxKey{}) != nil {
				f.calls = append(f.calls, call{op: "fetch", ctx: ctx, rg: rg})
			}
			if f.pageErr != nil && index+1 == len(f.pages)-1 {
				return page{}, f.pageErr
			}
			index++
			var result page
			result.Value = f.pages[index]
			if index+1 < len(f.pages) {
				result.NextLink = ptr.To("next")
			}
			return result, nil
		},
	})
}

func newRecord(name, location string) *models.SingletonTrackedResourceInner {
	return &models.SingletonTrackedResourceInner{
		Name:     ptr.To(name),
		Location: ptr.To(location),
	}
}

func TestGetByResourceGroupWrapsRecord(t *testing.T) {
	inner := &fakeInner{record: newRecord("only", "eastus")}
	manager := resources.NewManagerFromClient("sub-1", inner)

	item, err := manager.SingletonTrackedResources().GetByResourceGroup(context.Background(), "rg-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if item == nil {
		t.Fatal("got nil resource")
	}
	if item.Name() != "only" || item.Location() != "eastus" {
		t.Fatalf("got name=%q location=%q", item.Name(), item.Location())
	}
	if item.Manager() != manager {
		t.Fatal("resource does not reference the manager of the façade")
	}
	if item.InnerModel() != inner.record {
		t.Fatal("resource does not wrap the record of the inner client")
	}
	if len(inner.calls) != 1 || inner.calls[0].rg != "rg-1" {
		t.Fatalf("unexpected calls %+v", inner.calls)
	}
}

func TestGetByResourceGroupAbsent(t *testing.T) {
	inner := &fakeInner{}
	manager := resources.NewManagerFromClient("sub-1", inner)

	item, err := manager.SingletonTrackedResources().GetByResourceGroup(context.Background(), "rg-2", nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if item != nil {
		t.Fatalf("got %+v, want nil", item)
	}
}

func TestGetByResourceGroupWithResponse(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://management.example.com/rg-3", nil)
	if err != nil {
		t.Fatalf("failed to create request: %s", err)
	}
	header := http.Header{"X-Req": []string{"a"}}

	testCases := []struct {
		desc        string
		resp        *models.Response[models.SingletonTrackedResourceInner]
		wantNil     bool
		wantPayload bool
	}{
		{
			desc: "envelope with payload",
			resp: &models.Response[models.SingletonTrackedResourceInner]{
				Request:    req,
				StatusCode: http.StatusOK,
				Header:     header,
				Value:      newRecord("x", "westeurope"),
			},
			wantPayload: true,
		},
		{
			desc: "envelope without payload",
			resp: &models.Response[models.SingletonTrackedResourceInner]{
				Request:    req,
				StatusCode: http.StatusOK,
				Header:     header,
			},
		},
		{
			desc:    "no envelope",
			resp:    nil,
			wantNil: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			inner := &fakeInner{resp: tc.resp}
			manager := resources.NewManagerFromClient("sub-1", inner)
			facade := manager.SingletonTrackedResources()

			for _, op := range []string{"get", "update"} {
				var out *models.Response[resources.SingletonTrackedResource]
				var err error
				switch op {
				case "get":
					out, err = facade.GetByResourceGroupWithResponse(context.Background(), "rg-3", nil)
				case "update":
					out, err = facade.UpdateWithResponse(context.Background(), "rg-3", newRecord("x", ""), nil)
				}
				if err != nil {
					t.Fatalf("%s: unexpected error: %s", op, err)
				}

				if tc.wantNil {
					if out != nil {
						t.Fatalf("%s: got %+v, want nil", op, out)
					}
					continue
				}

				if out == nil {
					t.Fatalf("%s: got nil envelope", op)
				}
				if out.Request != req || out.StatusCode != http.StatusOK || out.Header.Get("X-Req") != "a" {
					t.Fatalf("%s: envelope metadata was not preserved: %+v", op, out)
				}
				if !tc.wantPayload {
					if out.Value != nil {
						t.Fatalf("%s: got payload %+v, want nil", op, out.Value)
					}
					continue
				}
				if out.Value == nil || out.Value.Name() != "x" || out.Value.Manager() != manager {
					t.Fatalf("%s: payload was not wrapped: %+v", op, out.Value)
				}
			}
		})
	}
}

func TestCreateOrUpdatePassesThrough(t *testing.T) {
	r0 := newRecord("default", "eastus")
	r1 := newRecord("default", "eastus2")
	inner := &fakeInner{record: r1}
	manager := resources.NewManagerFromClient("sub-1", inner)
	ctx := context.WithValue(context.Background(), ctxKey{}, "correlation")

	item, err := manager.SingletonTrackedResources().CreateOrUpdate(ctx, "rg-4", r0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if item.InnerModel() != r1 || item.Manager() != manager {
		t.Fatal("result was not wrapped")
	}

	if len(inner.calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(inner.calls))
	}
	got := inner.calls[0]
	if got.op != "create-or-update" || got.rg != "rg-4" || got.resource != r0 || got.ctx != ctx {
		t.Fatalf("unexpected call %+v", got)
	}
}

func TestUpdatePassesThrough(t *testing.T) {
	props := &models.SingletonTrackedResourceInner{Tags: map[string]*string{"k": ptr.To("v")}}
	inner := &fakeInner{record: newRecord("default", "eastus")}
	manager := resources.NewManagerFromClient("sub-1", inner)
	ctx := context.WithValue(context.Background(), ctxKey{}, "correlation")

	item, err := manager.SingletonTrackedResources().Update(ctx, "rg-4", props, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if item.Location() != "eastus" {
		t.Fatalf("got location %q", item.Location())
	}

	got := inner.calls[0]
	if got.op != "update" || got.resource != props || got.ctx != ctx {
		t.Fatalf("unexpected call %+v", got)
	}

	inner.record = nil
	item, err = manager.SingletonTrackedResources().Update(ctx, "rg-4", props, nil)
	if err != nil || item != nil {
		t.Fatalf("got (%+v, %v), want (nil, nil)", item, err)
	}
}

func TestErrorsPropagate(t *testing.T) {
	authErr := &azcore.ResponseError{
		StatusCode: http.StatusForbidden,
		ErrorCode:  "AuthorizationFailed",
	}
	inner := &fakeInner{err: authErr, record: newRecord("ignored", "eastus")}
	facade := resources.NewManagerFromClient("sub-1", inner).SingletonTrackedResources()
	ctx := context.Background()

	testCases := []struct {
		desc string
		call func() (any, error)
	}{
		{"get", func() (any, error) { return facade.GetByResourceGroup(ctx, "rg", nil) }},
		{"get with response", func() (any, error) { return facade.GetByResourceGroupWithResponse(ctx, "rg", nil) }},
		{"create or update", func() (any, error) { return facade.CreateOrUpdate(ctx, "rg", newRecord("a", "b"), nil) }},
		{"update", func() (any, error) { return facade.Update(ctx, "rg", newRecord("a", "b"), nil) }},
		{"update with response", func() (any, error) { return facade.UpdateWithResponse(ctx, "rg", newRecord("a", "b"), nil) }},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := tc.call()
			if err != authErr {
				t.Fatalf("got error %v, want the inner error unchanged", err)
			}
		})
	}
}

func TestErrorsPropagateWithoutResult(t *testing.T) {
	inner := &fakeInner{err: errors.New("boom"), record: newRecord("ignored", "eastus")}
	facade := resources.NewManagerFromClient("sub-1", inner).SingletonTrackedResources()

	item, err := facade.GetByResourceGroup(context.Background(), "rg", nil)
	if err == nil || item != nil {
		t.Fatalf("got (%+v, %v), want (nil, error)", item, err)
	}
}

func TestNewListByResourceGroupPager(t *testing.T) {
	a, b, c := newRecord("a", "x"), newRecord("b", "x"), newRecord("c", "x")
	inner := &fakeInner{pages: [][]*models.SingletonTrackedResourceInner{{a, b}, {c}}}
	manager := resources.NewManagerFromClient("sub-1", inner)

	pager := manager.SingletonTrackedResources().NewListByResourceGroupPager("rg-5", nil)
	if inner.fetches != 0 {
		t.Fatalf("creating the pager fetched %d pages", inner.fetches)
	}

	want := [][]*models.SingletonTrackedResourceInner{{a, b}, {c}}
	pages := 0
	for pager.More() {
		page, err := pager.NextPage(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(page.Value) != len(want[pages]) {
			t.Fatalf("page %d: got %d items, want %d", pages, len(page.Value), len(want[pages]))
		}
		for i, item := range page.Value {
			if item.InnerModel() != want[pages][i] || item.Manager() != manager {
				t.Fatalf("page %d item %d was not wrapped in order", pages, i)
			}
		}
		if hasNext := page.NextLink != nil; hasNext != (pages == 0) {
			t.Fatalf("page %d: unexpected next link %v", pages, page.NextLink)
		}
		pages++
	}

	if pages != 2 || inner.fetches != 2 {
		t.Fatalf("got %d pages with %d fetches, want 2 and 2", pages, inner.fetches)
	}
}

func TestListByResourceGroup(t *testing.T) {
	a, b, c := newRecord("a", "x"), newRecord("b", "x"), newRecord("c", "x")
	inner := &fakeInner{pages: [][]*models.SingletonTrackedResourceInner{{a, b}, {c}}}
	manager := resources.NewManagerFromClient("sub-1", inner)
	ctx := context.WithValue(context.Background(), ctxKey{}, "correlation")

	got := make([]*resources.SingletonTrackedResource, 0)
	for item, err := range manager.SingletonTrackedResources().ListByResourceGroup(ctx, "rg-5", nil) {
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		got = append(got, item)
		if len(got) == 2 && inner.fetches != 1 {
			t.Fatalf("consuming the first page fetched %d pages", inner.fetches)
		}
		if len(got) == 3 {
			break
		}
	}

	want := []*models.SingletonTrackedResourceInner{a, b, c}
	for i := range want {
		if got[i].InnerModel() != want[i] || got[i].Manager() != manager {
			t.Fatalf("item %d was not wrapped in order", i)
		}
	}
	if inner.fetches != 2 {
		t.Fatalf("got %d fetches, want 2", inner.fetches)
	}

	for _, c := range inner.calls {
		if c.op == "fetch" && c.ctx.Value(ctxKey{}) != "correlation" {
			t.Fatal("context values did not reach the inner pager")
		}
	}
}

func TestListByResourceGroupPageError(t *testing.T) {
	pageErr := errors.New("page failed")
	inner := &fakeInner{
		pages:   [][]*models.SingletonTrackedResourceInner{{newRecord("a", "x")}, {newRecord("b", "x")}},
		pageErr: pageErr,
	}
	facade := resources.NewManagerFromClient("sub-1", inner).SingletonTrackedResources()

	names := make([]string, 0)
	var gotErr error
	for item, err := range facade.ListByResourceGroup(context.Background(), "rg", nil) {
		if err != nil {
			gotErr = err
			break
		}
		names = append(names, item.Name())
	}

	if len(names) != 1 || names[0] != "a" {
		t.Fatalf("got names %v, want [a]", names)
	}
	if gotErr != pageErr {
		t.Fatalf("got error %v, want %v", gotErr, pageErr)
	}
}

func TestFromInnerModel(t *testing.T) {
	manager := resources.NewManagerFromClient("sub-1", &fakeInner{})
	record := newRecord("only", "westeurope")

	item := manager.SingletonTrackedResources().FromInnerModel(record)
	if item == nil || item.InnerModel() != record || item.Manager() != manager {
		t.Fatalf("unexpected resource %+v", item)
	}

	if got := manager.SingletonTrackedResources().FromInnerModel(nil); got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}

func TestCreateOrUpdateAbsent(t *testing.T) {
	inner := &fakeInner{}
	manager := resources.NewManagerFromClient("sub-1", inner)

	item, err := manager.SingletonTrackedResources().CreateOrUpdate(context.Background(), "rg-4", newRecord("default", "eastus"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if item != nil {
		t.Fatalf("got %+v, want nil", item)
	}
}
