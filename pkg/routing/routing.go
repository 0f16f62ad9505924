package routing

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl"
)

var (
	ErrNotActivated = errors.New("the noise suppression chain is not activated")
	ErrSourceInUse  = errors.New("the denoised source is in use by an application")
)

// Router builds and tears down the noise suppression chain inside the audio
// server:
//
//	mic --loopback--> ladspa sink --> null sink --remap--> denoised source
type Router struct {
	Controller sourcectl.Controller
	StatePath  string
	PluginPath string
}

func NewRouter(
	controller sourcectl.Controller,
	statePath string,
	pluginPath string,
) *Router {
	return &Router{
		Controller: controller,
		StatePath:  statePath,
		PluginPath: pluginPath,
	}
}

// InputSources returns the sources eligible as an upstream microphone. The
// chain's own sources are excluded, otherwise it would be possible to route
// the suppressor into itself.
func (r *Router) InputSources(
	ctx context.Context,
) ([]sourcectl.Source, error) {
	sources, err := r.Controller.Sources(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]sourcectl.Source, 0, len(sources))
	for _, source := range sources {
		if isChainSource(source.Name) {
			continue
		}
		result = append(result, source)
	}
	return result, nil
}

// SelectSource resolves a user-provided device reference: an empty string
// means the current default source, a number is a source index, anything
// else is a source name.
func (r *Router) SelectSource(
	ctx context.Context,
	device string,
) (sourcectl.Source, error) {
	if device == "" {
		defaultName, err := r.Controller.DefaultSourceName(ctx)
		if err != nil {
			return sourcectl.Source{}, fmt.Errorf("unable to get the default source: %w", err)
		}
		return r.Controller.SourceByName(ctx, defaultName)
	}

	if idx, err := strconv.ParseUint(device, 10, 32); err == nil {
		sources, err := r.InputSources(ctx)
		if err != nil {
			return sourcectl.Source{}, err
		}
		for _, source := range sources {
			if source.Index == uint32(idx) {
				return source, nil
			}
		}
		return sourcectl.Source{}, fmt.Errorf("%w: index %d", sourcectl.ErrNoSuchSource, idx)
	}

	source, err := r.Controller.SourceByName(ctx, device)
	if err != nil {
		return sourcectl.Source{}, err
	}
	if isChainSource(source.Name) {
		return sourcectl.Source{}, fmt.Errorf("%w: %q is produced by the suppressor itself", sourcectl.ErrNoSuchSource, device)
	}
	return source, nil
}

// Activate validates the parameters, verifies the microphone exists, then
// loads the chain and optionally makes the denoised source the default. A
// previously recorded chain is unloaded first, so repeated activations never
// leak module handles.
func (r *Router) Activate(
	ctx context.Context,
	params Params,
	setDefault bool,
) (_ *State, _err error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := r.Controller.SourceByName(ctx, params.MicName); err != nil {
		return nil, err
	}

	if prevState, err := LoadState(r.StatePath); err == nil {
		logger.Infof(ctx, "a chain is already recorded, unloading it first")
		if err := r.deactivateState(ctx, prevState); err != nil {
			return nil, fmt.Errorf("unable to unload the previously loaded chain: %w", err)
		}
	} else if !errors.Is(err, ErrNotActivated) {
		return nil, err
	}

	prevDefault, err := r.Controller.DefaultSourceName(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to get the current default source: %w", err)
	}

	loaded := map[string]sourcectl.ModuleHandle{}
	defer func() {
		if _err == nil {
			return
		}
		for key, handle := range loaded {
			if err := r.Controller.UnloadModule(ctx, handle); err != nil {
				logger.Errorf(ctx, "unable to roll back module %s (%d): %v", key, handle, err)
			}
		}
	}()

	for _, step := range chainSteps {
		args := step.Args(params, r.PluginPath)
		handle, err := r.Controller.LoadModule(ctx, step.Module, args)
		if err != nil {
			return nil, fmt.Errorf("unable to build the chain at %s: %w", step.Module, err)
		}
		logger.Debugf(ctx, "loaded %s as %s with index %d and options: %s", step.Module, step.Key, handle, args)
		loaded[step.Key] = handle
	}

	if setDefault {
		if err := r.Controller.SetDefaultSource(ctx, DenoisedSourceName); err != nil {
			return nil, err
		}
		logger.Debugf(ctx, "set %s as the default source (was: %s)", DenoisedSourceName, prevDefault)
	}

	state := &State{
		Params:            params,
		Modules:           loaded,
		PrevDefaultSource: prevDefault,
	}
	if err := state.Save(r.StatePath); err != nil {
		return nil, err
	}
	return state, nil
}

// Deactivate unloads the recorded chain and restores the source that was the
// default before activation (if it still exists).
func (r *Router) Deactivate(
	ctx context.Context,
) error {
	state, err := LoadState(r.StatePath)
	if err != nil {
		return err
	}
	return r.deactivateState(ctx, state)
}

func (r *Router) deactivateState(
	ctx context.Context,
	state *State,
) error {
	for key, handle := range state.Modules {
		// The module may already be gone (e.g. the server restarted),
		// which is not a reason to keep the rest loaded.
		if err := r.Controller.UnloadModule(ctx, handle); err != nil {
			logger.Debugf(ctx, "unable to unload module %s (%d): %v", key, handle, err)
			continue
		}
		logger.Debugf(ctx, "unloaded module %s (%d)", key, handle)
	}

	if state.PrevDefaultSource != "" {
		if _, err := r.Controller.SourceByName(ctx, state.PrevDefaultSource); err == nil {
			if err := r.Controller.SetDefaultSource(ctx, state.PrevDefaultSource); err != nil {
				return err
			}
			logger.Debugf(ctx, "restored %s as the default source", state.PrevDefaultSource)
		}
	}

	return RemoveState(r.StatePath)
}

// ForceDeactivate unloads every module of the types the chain consists of,
// regardless of the recorded state. This may remove modules loaded by other
// applications.
func (r *Router) ForceDeactivate(
	ctx context.Context,
) error {
	modules, err := r.Controller.Modules(ctx)
	if err != nil {
		return err
	}

	var mErr *multierror.Error
	for _, module := range modules {
		if !isChainModuleType(module.Name) {
			continue
		}
		if err := r.Controller.UnloadModule(ctx, module.Handle); err != nil {
			mErr = multierror.Append(mErr, err)
			continue
		}
		logger.Debugf(ctx, "unloaded module %s (%d)", module.Name, module.Handle)
	}

	if err := RemoveState(r.StatePath); err != nil {
		mErr = multierror.Append(mErr, err)
	}
	return mErr.ErrorOrNil()
}

// SetControl rebuilds the chain with a new control level. Unless `force` is
// set, it refuses to do so while an application is recording from the
// denoised source, since the source briefly disappears during the rebuild.
func (r *Router) SetControl(
	ctx context.Context,
	control int,
	force bool,
	setDefault bool,
) error {
	active, state, err := r.Status(ctx)
	if err != nil {
		return err
	}
	if !active {
		return ErrNotActivated
	}

	if !force {
		inUse, err := r.SourceInUse(ctx)
		if err != nil {
			return err
		}
		if inUse {
			return ErrSourceInUse
		}
	}

	params := state.Params
	params.Control = control
	if err := params.Validate(); err != nil {
		return err
	}

	if err := r.deactivateState(ctx, state); err != nil {
		return err
	}
	_, err = r.Activate(ctx, params, setDefault)
	return err
}

// Status reports whether the chain is actually live: a state file alone is
// not enough, since the audio server may have been restarted (which drops all
// modules) while the file stayed behind.
func (r *Router) Status(
	ctx context.Context,
) (bool, *State, error) {
	state, err := LoadState(r.StatePath)
	if errors.Is(err, ErrNotActivated) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}

	sources, err := r.Controller.Sources(ctx)
	if err != nil {
		return false, nil, err
	}
	// Any surviving piece of the chain counts: a half-dead chain still has
	// to be torn down or rebuilt, not treated as "nothing is loaded".
	for _, source := range sources {
		if isChainSource(source.Name) {
			return true, state, nil
		}
	}
	return false, state, nil
}

// SourceInUse reports whether some application is recording from the
// denoised source.
func (r *Router) SourceInUse(
	ctx context.Context,
) (bool, error) {
	source, err := r.Controller.SourceByName(ctx, DenoisedSourceName)
	if err != nil {
		if errors.Is(err, sourcectl.ErrNoSuchSource) {
			return false, nil
		}
		return false, err
	}

	outputs, err := r.Controller.SourceOutputs(ctx)
	if err != nil {
		return false, err
	}
	for _, output := range outputs {
		if output.SourceIndex == source.Index {
			return true, nil
		}
	}
	return false, nil
}
