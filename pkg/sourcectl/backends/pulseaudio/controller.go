package pulseaudio

import (
	"context"
	"errors"
	"fmt"

	"github.com/jfreymuth/pulse"
	"github.com/jfreymuth/pulse/proto"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl/types"
)

type Controller struct {
	PulseClient *pulse.Client
}

var _ types.Controller = (*Controller)(nil)

func NewController() (*Controller, error) {
	c, err := pulse.NewClient(pulse.ClientApplicationName("pulsesuppress"))
	if err != nil {
		return nil, fmt.Errorf("unable to open a client to Pulse: %w", err)
	}
	return &Controller{
		PulseClient: c,
	}, nil
}

func (c *Controller) Close() error {
	c.PulseClient.Close()
	return nil
}

func (c *Controller) Ping(context.Context) error {
	_, err := c.PulseClient.DefaultSource()
	return err
}

func (c *Controller) Sources(
	ctx context.Context,
) ([]types.Source, error) {
	var reply proto.GetSourceInfoListReply
	if err := c.PulseClient.RawRequest(&proto.GetSourceInfoList{}, &reply); err != nil {
		return nil, fmt.Errorf("unable to get the list of sources: %w", err)
	}

	sources := make([]types.Source, 0, len(reply))
	for _, info := range reply {
		sources = append(sources, sourceFromInfo(info))
	}
	return sources, nil
}

func sourceFromInfo(info *proto.GetSourceInfoReply) types.Source {
	return types.Source{
		Index:       info.SourceIndex,
		Name:        info.SourceName,
		Description: info.Device,
		Channels:    len(info.ChannelMap),
		SampleRate:  int(info.SampleSpec.Rate),
	}
}

func moduleFromInfo(info *proto.GetModuleInfoReply) types.Module {
	return types.Module{
		Handle: types.ModuleHandle(info.ModuleIndex),
		Name:   info.ModuleName,
		Args:   info.ModuleArgs,
	}
}

func sourceOutputFromInfo(info *proto.GetSourceOutputInfoReply) types.SourceOutput {
	return types.SourceOutput{
		// sic: the field is misspelled upstream.
		Index:       info.SourceOutpuIndex,
		SourceIndex: info.SourceIndex,
	}
}

func (c *Controller) SourceByName(
	ctx context.Context,
	name string,
) (types.Source, error) {
	var reply proto.GetSourceInfoReply
	err := c.PulseClient.RawRequest(&proto.GetSourceInfo{
		SourceIndex: proto.Undefined,
		SourceName:  name,
	}, &reply)
	if err != nil {
		var protoErr proto.Error
		if errors.As(err, &protoErr) {
			return types.Source{}, fmt.Errorf("%w: %q: %v", types.ErrNoSuchSource, name, protoErr)
		}
		return types.Source{}, fmt.Errorf("unable to query the source %q: %w", name, err)
	}
	return sourceFromInfo(&reply), nil
}

func (c *Controller) DefaultSourceName(
	ctx context.Context,
) (string, error) {
	var reply proto.GetServerInfoReply
	if err := c.PulseClient.RawRequest(&proto.GetServerInfo{}, &reply); err != nil {
		return "", fmt.Errorf("unable to get the server info: %w", err)
	}
	return reply.DefaultSourceName, nil
}

func (c *Controller) SetDefaultSource(
	ctx context.Context,
	name string,
) error {
	if err := c.PulseClient.RawRequest(&proto.SetDefaultSource{
		SourceName: name,
	}, nil); err != nil {
		return fmt.Errorf("unable to set %q as the default source: %w", name, err)
	}
	return nil
}

func (c *Controller) LoadModule(
	ctx context.Context,
	name string,
	args string,
) (types.ModuleHandle, error) {
	var reply proto.LoadModuleReply
	if err := c.PulseClient.RawRequest(&proto.LoadModule{
		Name: name,
		Args: args,
	}, &reply); err != nil {
		return 0, fmt.Errorf("unable to load module %q (args: %s): %w", name, args, err)
	}
	return types.ModuleHandle(reply.ModuleIndex), nil
}

func (c *Controller) UnloadModule(
	ctx context.Context,
	handle types.ModuleHandle,
) error {
	if err := c.PulseClient.RawRequest(&proto.UnloadModule{
		ModuleIndex: uint32(handle),
	}, nil); err != nil {
		return fmt.Errorf("unable to unload module %d: %w", handle, err)
	}
	return nil
}

func (c *Controller) Modules(
	ctx context.Context,
) ([]types.Module, error) {
	var reply proto.GetModuleInfoListReply
	if err := c.PulseClient.RawRequest(&proto.GetModuleInfoList{}, &reply); err != nil {
		return nil, fmt.Errorf("unable to get the list of modules: %w", err)
	}

	modules := make([]types.Module, 0, len(reply))
	for _, info := range reply {
		modules = append(modules, moduleFromInfo(info))
	}
	return modules, nil
}

func (c *Controller) SourceOutputs(
	ctx context.Context,
) ([]types.SourceOutput, error) {
	var reply proto.GetSourceOutputInfoListReply
	if err := c.PulseClient.RawRequest(&proto.GetSourceOutputInfoList{}, &reply); err != nil {
		return nil, fmt.Errorf("unable to get the list of source outputs: %w", err)
	}

	outputs := make([]types.SourceOutput, 0, len(reply))
	for _, info := range reply {
		outputs = append(outputs, sourceOutputFromInfo(info))
	}
	return outputs, nil
}
