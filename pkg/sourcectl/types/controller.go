package types

import (
	"context"
	"io"
)

// Controller is the control surface of an audio server: enumerating input
// sources, loading/unloading processing modules and switching the default
// input. Implementations live in `backends/`.
type Controller interface {
	io.Closer

	Ping(ctx context.Context) error
	Sources(ctx context.Context) ([]Source, error)
	SourceByName(ctx context.Context, name string) (Source, error)
	DefaultSourceName(ctx context.Context) (string, error)
	SetDefaultSource(ctx context.Context, name string) error
	LoadModule(ctx context.Context, name string, args string) (ModuleHandle, error)
	UnloadModule(ctx context.Context, handle ModuleHandle) error
	Modules(ctx context.Context) ([]Module, error)
	SourceOutputs(ctx context.Context) ([]SourceOutput, error)
}

type CaptureStream interface {
	io.Closer
}

// Capturer is implemented by backends that can also record from a source
// (used to verify the denoised source actually produces audio).
type Capturer interface {
	CaptureSource(
		ctx context.Context,
		sourceName string,
		sampleRate int,
		writer io.Writer,
	) (CaptureStream, error)
}
