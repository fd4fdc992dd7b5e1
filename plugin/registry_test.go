package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocad/scadcore/csg"
	"github.com/gocad/scadcore/value"
)

func TestRegisterAndLookupPrimitive(t *testing.T) {
	r := NewRegistry()
	fn := func(args []value.Value) *csg.Handle { return csg.NewHandle(csg.Mesh{}) }
	require.NoError(t, r.RegisterPrimitive("gear", fn))

	got, ok := r.LookupPrimitive("gear")
	assert.True(t, ok)
	assert.NotNil(t, got)

	_, ok = r.LookupPrimitive("nonexistent")
	assert.False(t, ok)
}

func TestRegisterPrimitiveDuplicateErrors(t *testing.T) {
	r := NewRegistry()
	fn := func(args []value.Value) *csg.Handle { return nil }
	require.NoError(t, r.RegisterPrimitive("gear", fn))
	assert.Error(t, r.RegisterPrimitive("gear", fn))
}

func TestRegisterTransformAndFunction(t *testing.T) {
	r := NewRegistry()
	xf := func(children *csg.Handle, args []value.Value) *csg.Handle { return children }
	require.NoError(t, r.RegisterTransform("bevel", xf))
	_, ok := r.LookupTransform("bevel")
	assert.True(t, ok)

	fn := func(args []value.Value) value.Value { return value.Number(1) }
	require.NoError(t, r.RegisterFunction("double", fn))
	_, ok = r.LookupFunction("double")
	assert.True(t, ok)
}

type fakeLifecycle struct {
	activated   bool
	deactivated bool
	failActivate bool
}

func (f *fakeLifecycle) Activate() error {
	if f.failActivate {
		return errors.New("boom")
	}
	f.activated = true
	return nil
}

func (f *fakeLifecycle) Deactivate() error {
	f.deactivated = true
	return nil
}

func TestActivateAndShutdownOrder(t *testing.T) {
	r := NewRegistry()
	var order []string
	a := &orderedLifecycle{name: "a", order: &order}
	b := &orderedLifecycle{name: "b", order: &order}

	require.NoError(t, r.Activate(a, b))
	assert.True(t, a.activated)
	assert.True(t, b.activated)

	require.NoError(t, r.Shutdown())
	assert.Equal(t, []string{"a", "b", "b-deactivate", "a-deactivate"}, order)
}

type orderedLifecycle struct {
	name      string
	order     *[]string
	activated bool
}

func (o *orderedLifecycle) Activate() error {
	o.activated = true
	*o.order = append(*o.order, o.name)
	return nil
}

func (o *orderedLifecycle) Deactivate() error {
	*o.order = append(*o.order, o.name+"-deactivate")
	return nil
}

func TestActivateStopsOnFirstError(t *testing.T) {
	r := NewRegistry()
	ok := &fakeLifecycle{}
	bad := &fakeLifecycle{failActivate: true}

	err := r.Activate(ok, bad)
	assert.Error(t, err)
	assert.True(t, ok.activated)
	assert.False(t, bad.activated)
}
