package types

import (
	"errors"
)

// ModuleHandle is the opaque identifier the audio server assigns to a loaded
// module. It is only meaningful for the lifetime of the server process.
type ModuleHandle uint32

type Source struct {
	Index       uint32
	Name        string
	Description string
	Channels    int
	SampleRate  int
}

type Module struct {
	Handle ModuleHandle
	Name   string
	Args   string
}

type SourceOutput struct {
	Index       uint32
	SourceIndex uint32
}

var ErrNoSuchSource = errors.New("no such source")
