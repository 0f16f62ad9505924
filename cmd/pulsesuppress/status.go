package main

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

func cmdStatus(ctx context.Context, args []string) {
	fs := pflag.NewFlagSet("status", pflag.ExitOnError)
	fatalIfError(fs.Parse(args))

	controller := newController(ctx)
	defer controller.Close()
	router := newRouter(controller, false)

	active, state, err := router.Status(ctx)
	fatalIfError(err)

	if !active {
		color.Red("The plugin is not loaded.")
		os.Exit(1)
	}
	color.Green("The plugin is loaded.")
	printParams(os.Stdout, state.Params)
}
