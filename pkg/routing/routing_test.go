package routing

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl"
)

// fakeController is an in-memory audio server: loading a sink module makes
// the matching monitor source appear, loading the remap module makes the
// denoised source appear, unloading removes them again.
type fakeController struct {
	sources     []sourcectl.Source
	defaultName string
	modules     map[sourcectl.ModuleHandle]sourcectl.Module
	outputs     []sourcectl.SourceOutput
	nextHandle  sourcectl.ModuleHandle
	loadCalls   int
}

var _ sourcectl.Controller = (*fakeController)(nil)

func newFakeController() *fakeController {
	return &fakeController{
		sources: []sourcectl.Source{
			{Index: 1, Name: "alsa_input.usb-mic", Description: "USB Microphone", Channels: 1, SampleRate: 44100},
			{Index: 2, Name: "alsa_input.builtin", Description: "Built-in Audio", Channels: 2, SampleRate: 48000},
		},
		defaultName: "alsa_input.usb-mic",
		modules:     map[sourcectl.ModuleHandle]sourcectl.Module{},
		nextHandle:  100,
	}
}

func (c *fakeController) Close() error               { return nil }
func (c *fakeController) Ping(context.Context) error { return nil }

func (c *fakeController) Sources(context.Context) ([]sourcectl.Source, error) {
	return append([]sourcectl.Source{}, c.sources...), nil
}

func (c *fakeController) SourceByName(_ context.Context, name string) (sourcectl.Source, error) {
	for _, source := range c.sources {
		if source.Name == name {
			return source, nil
		}
	}
	return sourcectl.Source{}, fmt.Errorf("%w: %q", sourcectl.ErrNoSuchSource, name)
}

func (c *fakeController) DefaultSourceName(context.Context) (string, error) {
	return c.defaultName, nil
}

func (c *fakeController) SetDefaultSource(ctx context.Context, name string) error {
	if _, err := c.SourceByName(ctx, name); err != nil {
		return err
	}
	c.defaultName = name
	return nil
}

func (c *fakeController) LoadModule(_ context.Context, name string, args string) (sourcectl.ModuleHandle, error) {
	c.loadCalls++
	handle := c.nextHandle
	c.nextHandle++
	c.modules[handle] = sourcectl.Module{Handle: handle, Name: name, Args: args}

	switch name {
	case moduleNullSink:
		c.addSource(NullSinkName + ".monitor")
	case moduleLadspaSink:
		c.addSource(LadspaSinkName + ".monitor")
	case moduleRemapSource:
		c.addSource(DenoisedSourceName)
	}
	return handle, nil
}

func (c *fakeController) UnloadModule(_ context.Context, handle sourcectl.ModuleHandle) error {
	module, ok := c.modules[handle]
	if !ok {
		return fmt.Errorf("no module with index %d", handle)
	}
	delete(c.modules, handle)

	switch module.Name {
	case moduleNullSink:
		c.removeSource(NullSinkName + ".monitor")
	case moduleLadspaSink:
		c.removeSource(LadspaSinkName + ".monitor")
	case moduleRemapSource:
		c.removeSource(DenoisedSourceName)
	}
	return nil
}

func (c *fakeController) Modules(context.Context) ([]sourcectl.Module, error) {
	var modules []sourcectl.Module
	for _, module := range c.modules {
		modules = append(modules, module)
	}
	return modules, nil
}

func (c *fakeController) SourceOutputs(context.Context) ([]sourcectl.SourceOutput, error) {
	return append([]sourcectl.SourceOutput{}, c.outputs...), nil
}

func (c *fakeController) addSource(name string) {
	var maxIdx uint32
	for _, source := range c.sources {
		if source.Index > maxIdx {
			maxIdx = source.Index
		}
	}
	c.sources = append(c.sources, sourcectl.Source{
		Index:      maxIdx + 1,
		Name:       name,
		Channels:   1,
		SampleRate: 48000,
	})
}

func (c *fakeController) removeSource(name string) {
	result := c.sources[:0]
	for _, source := range c.sources {
		if source.Name != name {
			result = append(result, source)
		}
	}
	c.sources = result
	if c.defaultName == name {
		c.defaultName = ""
	}
}

func newTestRouter(t *testing.T) (*Router, *fakeController) {
	controller := newFakeController()
	router := NewRouter(
		controller,
		filepath.Join(t.TempDir(), "state.yaml"),
		"/usr/lib/ladspa/librnnoise_ladspa.so",
	)
	return router, controller
}

func testParams() Params {
	return Params{
		MicName: "alsa_input.usb-mic",
		MicRate: 44100,
		Control: 50,
	}
}

func TestActivateDeactivate(t *testing.T) {
	ctx := context.Background()
	router, controller := newTestRouter(t)

	state, err := router.Activate(ctx, testParams(), true)
	require.NoError(t, err)
	require.Len(t, state.Modules, 4, spew.Sdump(state))
	require.Equal(t, "alsa_input.usb-mic", state.PrevDefaultSource)
	require.Equal(t, DenoisedSourceName, controller.defaultName)

	active, _, err := router.Status(ctx)
	require.NoError(t, err)
	require.True(t, active)

	require.NoError(t, router.Deactivate(ctx))
	assert.Empty(t, controller.modules, spew.Sdump(controller.modules))
	assert.Equal(t, "alsa_input.usb-mic", controller.defaultName)

	active, _, err = router.Status(ctx)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestActivateUnknownDevice(t *testing.T) {
	ctx := context.Background()
	router, controller := newTestRouter(t)

	params := testParams()
	params.MicName = "no.such.device"
	_, err := router.Activate(ctx, params, true)
	require.ErrorIs(t, err, sourcectl.ErrNoSuchSource)
	assert.Zero(t, controller.loadCalls, "no module should have been loaded")
}

func TestActivateInvalidControl(t *testing.T) {
	ctx := context.Background()
	router, controller := newTestRouter(t)

	for _, control := range []int{-1, 101, 1000} {
		t.Run(fmt.Sprintf("control_%d", control), func(t *testing.T) {
			params := testParams()
			params.Control = control
			_, err := router.Activate(ctx, params, true)
			require.Error(t, err)
			assert.Zero(t, controller.loadCalls)
		})
	}
}

func TestActivateTwiceDoesNotLeakModules(t *testing.T) {
	ctx := context.Background()
	router, controller := newTestRouter(t)

	first, err := router.Activate(ctx, testParams(), true)
	require.NoError(t, err)

	second, err := router.Activate(ctx, testParams(), true)
	require.NoError(t, err)

	require.Len(t, controller.modules, 4, spew.Sdump(controller.modules))
	for key, handle := range first.Modules {
		_, stillLoaded := controller.modules[handle]
		assert.False(t, stillLoaded, "module %s (%d) from the first chain is still loaded", key, handle)
	}
	for key, handle := range second.Modules {
		_, loaded := controller.modules[handle]
		assert.True(t, loaded, "module %s (%d) from the second chain is missing", key, handle)
	}
}

func TestDeactivateWithoutActivate(t *testing.T) {
	ctx := context.Background()
	router, _ := newTestRouter(t)
	require.ErrorIs(t, router.Deactivate(ctx), ErrNotActivated)
}

func TestDeactivateSurvivesServerRestart(t *testing.T) {
	ctx := context.Background()
	router, controller := newTestRouter(t)

	_, err := router.Activate(ctx, testParams(), true)
	require.NoError(t, err)

	// A server restart drops all modules but leaves the state file behind.
	controller.modules = map[sourcectl.ModuleHandle]sourcectl.Module{}
	controller.removeSource(DenoisedSourceName)
	controller.removeSource(NullSinkName + ".monitor")
	controller.removeSource(LadspaSinkName + ".monitor")
	controller.defaultName = "alsa_input.usb-mic"

	require.NoError(t, router.Deactivate(ctx))

	active, _, err := router.Status(ctx)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestSetControl(t *testing.T) {
	ctx := context.Background()
	router, controller := newTestRouter(t)

	t.Run("NotActivated", func(t *testing.T) {
		require.ErrorIs(t, router.SetControl(ctx, 70, false, false), ErrNotActivated)
	})

	_, err := router.Activate(ctx, testParams(), true)
	require.NoError(t, err)

	t.Run("InUse", func(t *testing.T) {
		denoised, err := controller.SourceByName(ctx, DenoisedSourceName)
		require.NoError(t, err)
		controller.outputs = []sourcectl.SourceOutput{{Index: 7, SourceIndex: denoised.Index}}

		require.ErrorIs(t, router.SetControl(ctx, 70, false, false), ErrSourceInUse)
		require.NoError(t, router.SetControl(ctx, 70, true, false))
		controller.outputs = nil
	})

	t.Run("Changed", func(t *testing.T) {
		require.NoError(t, router.SetControl(ctx, 30, false, false))
		_, state, err := router.Status(ctx)
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, 30, state.Params.Control)
		assert.Len(t, controller.modules, 4)
	})
}

func TestStatusWithPartiallyDeadChain(t *testing.T) {
	ctx := context.Background()
	router, controller := newTestRouter(t)

	state, err := router.Activate(ctx, testParams(), true)
	require.NoError(t, err)

	// The remap-source module died, but the sinks (and their monitors)
	// survived. That is still a loaded chain.
	remapHandle := state.Modules[DenoisedSourceName]
	require.NoError(t, controller.UnloadModule(ctx, remapHandle))

	active, _, err := router.Status(ctx)
	require.NoError(t, err)
	require.True(t, active, spew.Sdump(controller.sources))

	// And it can still be rebuilt with a new control level.
	require.NoError(t, router.SetControl(ctx, 30, false, false))
	_, newState, err := router.Status(ctx)
	require.NoError(t, err)
	require.NotNil(t, newState)
	assert.Equal(t, 30, newState.Params.Control)
	assert.Len(t, controller.modules, 4)

	_, err = controller.SourceByName(ctx, DenoisedSourceName)
	assert.NoError(t, err)
}

func TestForceDeactivate(t *testing.T) {
	ctx := context.Background()
	router, controller := newTestRouter(t)

	_, err := router.Activate(ctx, testParams(), true)
	require.NoError(t, err)

	// A module of an unrelated type must survive.
	unrelated, err := controller.LoadModule(ctx, "module-echo-cancel", "")
	require.NoError(t, err)

	require.NoError(t, router.ForceDeactivate(ctx))
	require.Len(t, controller.modules, 1, spew.Sdump(controller.modules))
	_, ok := controller.modules[unrelated]
	assert.True(t, ok)
}

func TestInputSourcesExcludeChain(t *testing.T) {
	ctx := context.Background()
	router, _ := newTestRouter(t)

	_, err := router.Activate(ctx, testParams(), true)
	require.NoError(t, err)

	sources, err := router.InputSources(ctx)
	require.NoError(t, err)
	for _, source := range sources {
		assert.NotEqual(t, DenoisedSourceName, source.Name)
		assert.NotEqual(t, NullSinkName+".monitor", source.Name)
		assert.NotEqual(t, LadspaSinkName+".monitor", source.Name)
	}
	assert.Len(t, sources, 2, spew.Sdump(sources))
}

func TestSelectSource(t *testing.T) {
	ctx := context.Background()
	router, _ := newTestRouter(t)

	t.Run("Empty_IsDefault", func(t *testing.T) {
		source, err := router.SelectSource(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, "alsa_input.usb-mic", source.Name)
	})

	t.Run("ByIndex", func(t *testing.T) {
		source, err := router.SelectSource(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, "alsa_input.builtin", source.Name)
	})

	t.Run("ByName", func(t *testing.T) {
		source, err := router.SelectSource(ctx, "alsa_input.builtin")
		require.NoError(t, err)
		assert.Equal(t, uint32(2), source.Index)
	})

	t.Run("UnknownIndex", func(t *testing.T) {
		_, err := router.SelectSource(ctx, "999")
		require.ErrorIs(t, err, sourcectl.ErrNoSuchSource)
	})

	t.Run("UnknownName", func(t *testing.T) {
		_, err := router.SelectSource(ctx, "no.such.device")
		require.ErrorIs(t, err, sourcectl.ErrNoSuchSource)
	})

	t.Run("OwnSourceRejected", func(t *testing.T) {
		_, err := router.Activate(ctx, testParams(), false)
		require.NoError(t, err)
		_, err = router.SelectSource(ctx, DenoisedSourceName)
		require.ErrorIs(t, err, sourcectl.ErrNoSuchSource)
	})
}
