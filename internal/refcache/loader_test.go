package refcache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aharoni/caseboard/internal/model"
	"github.com/aharoni/caseboard/internal/refcache"
	"github.com/aharoni/caseboard/tests/testutil"
)

// fakeProvider serves canned option lists and counts fetches per source.
type fakeProvider struct {
	staff    []model.Option
	children []model.Option
	errs     map[string]error
	calls    map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		staff:    []model.Option{{ID: "s1", Label: "Dana"}},
		children: []model.Option{{ID: "c1", Label: "Yoav"}},
		errs:     map[string]error{},
		calls:    map[string]int{},
	}
}

func (p *fakeProvider) list(source string, opts []model.Option) ([]model.Option, error) {
	p.calls[source]++
	if err := p.errs[source]; err != nil {
		return nil, err
	}
	return opts, nil
}

func (p *fakeProvider) ListStaff(context.Context) ([]model.Option, error) {
	return p.list("staff", p.staff)
}

func (p *fakeProvider) ListChildren(context.Context) ([]model.Option, error) {
	return p.list("children", p.children)
}

func (p *fakeProvider) ListTutors(context.Context) ([]model.Option, error) {
	return p.list("tutors", nil)
}

func (p *fakeProvider) ListPendingTutors(context.Context) ([]model.Option, error) {
	return p.list("pending tutors", nil)
}

func (p *fakeProvider) ListGeneralVolunteers(context.Context) ([]model.Option, error) {
	return p.list("general volunteers", nil)
}

func TestLoadAll_CachesAcrossLoads(t *testing.T) {
	p := newFakeProvider()
	loader := refcache.NewLoader(p, testutil.NewTestCache(t), zerolog.Nop())
	ctx := context.Background()

	data, failures := loader.LoadAll(ctx, false)
	require.Empty(t, failures)
	assert.Equal(t, p.staff, data.Staff)
	assert.Equal(t, 1, p.calls["staff"])

	// Second load is served from the cache.
	data, failures = loader.LoadAll(ctx, false)
	require.Empty(t, failures)
	assert.Equal(t, p.staff, data.Staff)
	assert.Equal(t, 1, p.calls["staff"])
}

func TestLoadAll_ForceRefetches(t *testing.T) {
	p := newFakeProvider()
	loader := refcache.NewLoader(p, testutil.NewTestCache(t), zerolog.Nop())
	ctx := context.Background()

	loader.LoadAll(ctx, false)
	p.staff = []model.Option{{ID: "s2", Label: "Noam"}}

	data, failures := loader.LoadAll(ctx, true)
	require.Empty(t, failures)
	assert.Equal(t, p.staff, data.Staff)
	assert.Equal(t, 2, p.calls["staff"])
}

// One failed source degrades to an empty list; the rest still load.
func TestLoadAll_PartialFailure(t *testing.T) {
	p := newFakeProvider()
	p.errs["children"] = errors.New("boom")
	loader := refcache.NewLoader(p, testutil.NewTestCache(t), zerolog.Nop())

	data, failures := loader.LoadAll(context.Background(), false)
	require.Len(t, failures, 1)
	assert.Equal(t, "children", failures[0].Source)
	assert.Nil(t, data.Children)
	assert.Equal(t, p.staff, data.Staff)
}

// A failure is not cached: the next load retries the source.
func TestLoadAll_FailureIsRetried(t *testing.T) {
	p := newFakeProvider()
	p.errs["children"] = errors.New("boom")
	loader := refcache.NewLoader(p, testutil.NewTestCache(t), zerolog.Nop())
	ctx := context.Background()

	_, failures := loader.LoadAll(ctx, false)
	require.Len(t, failures, 1)

	delete(p.errs, "children")
	data, failures := loader.LoadAll(ctx, false)
	require.Empty(t, failures)
	assert.Equal(t, p.children, data.Children)
	assert.Equal(t, 2, p.calls["children"])
}
