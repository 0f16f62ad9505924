package main

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/pulsesuppress/pkg/routing"
)

func cmdDeactivate(ctx context.Context, args []string) {
	fs := pflag.NewFlagSet("deactivate", pflag.ExitOnError)
	force := fs.BoolP("force", "f", false,
		"remove all modules of the types the chain consists of "+
			"(module-loopback, module-null-sink, module-ladspa-sink, module-remap-source); "+
			"this may remove modules loaded by other applications")
	fatalIfError(fs.Parse(args))

	controller := newController(ctx)
	defer controller.Close()
	router := newRouter(controller, false)

	if *force {
		fatalIfError(router.ForceDeactivate(ctx))
		color.Green("Deactivated!")
		return
	}

	err := router.Deactivate(ctx)
	if errors.Is(err, routing.ErrNotActivated) {
		fatalf("No loaded modules found (already deactivated?), try --force if you are sure.")
	}
	fatalIfError(err)
	color.Green("Deactivated!")
}
