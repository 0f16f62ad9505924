package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/xaionaro-go/pulsesuppress/pkg/routing"
)

func cmdControl(ctx context.Context, args []string) {
	if len(args) < 1 {
		fatalf("usage: pulsesuppress control get|set")
	}

	switch args[0] {
	case "get":
		cmdControlGet(ctx, args[1:])
	case "set":
		cmdControlSet(ctx, args[1:])
	default:
		fatalf("unknown control subcommand: %q (expected get or set)", args[0])
	}
}

func cmdControlGet(ctx context.Context, args []string) {
	fs := pflag.NewFlagSet("control get", pflag.ExitOnError)
	fatalIfError(fs.Parse(args))

	controller := newController(ctx)
	defer controller.Close()
	router := newRouter(controller, false)

	active, state, err := router.Status(ctx)
	fatalIfError(err)
	if !active {
		fatalf("Plugin is not activated.")
	}
	fmt.Println(state.Params.Control)
}

func cmdControlSet(ctx context.Context, args []string) {
	fs := pflag.NewFlagSet("control set", pflag.ExitOnError)
	force := fs.BoolP("force", "f", false, "change the control level even if the denoised source is in use")
	setDefault := fs.Bool("set-default", false, "set the rebuilt denoised device as the default device")
	fatalIfError(fs.Parse(args))

	if fs.NArg() != 1 {
		fatalf("usage: pulsesuppress control set LEVEL")
	}
	level, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		fatalf("invalid control level %q: %v", fs.Arg(0), err)
	}
	if level < routing.ControlMin || level > routing.ControlMax {
		fatalf("invalid control level %d: expected a value in [%d..%d]", level, routing.ControlMin, routing.ControlMax)
	}

	controller := newController(ctx)
	defer controller.Close()
	router := newRouter(controller, true)

	err = router.SetControl(ctx, level, *force, *setDefault)
	switch {
	case errors.Is(err, routing.ErrNotActivated):
		fatalf("Plugin is not activated, cannot change control level.")
	case errors.Is(err, routing.ErrSourceInUse):
		fatalf("The denoised source is in use, changing the control level may cause " +
			"applications to misbehave. Use --force if you are sure.")
	}
	fatalIfError(err)
	fmt.Fprintf(os.Stdout, "Control level set to %d.\n", level)
}
