package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"
)

func cmdList(ctx context.Context, args []string) {
	fs := pflag.NewFlagSet("list", pflag.ExitOnError)
	fatalIfError(fs.Parse(args))

	controller := newController(ctx)
	defer controller.Close()
	router := newRouter(controller, false)

	sources, err := router.InputSources(ctx)
	fatalIfError(err)
	printSourceTable(os.Stdout, sources)
}
