package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/pulsesuppress/pkg/routing"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl"
	_ "github.com/xaionaro-go/pulsesuppress/pkg/sourcectl/backends/pulseaudio"
)

const version = "1.0.0"

func main() {
	loggerLevel := logger.LevelWarning
	pflag.CommandLine.SetInterspersed(false)
	pflag.Var(&loggerLevel, "log-level", "Log level")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	printVersion := pflag.Bool("version", false, "print the version and exit")
	pflag.Usage = printUsage
	pflag.Parse()

	if *printVersion {
		fmt.Printf("pulsesuppress %s\n", version)
		return
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if *netPprofAddr != "" {
		observability.Go(ctx, func(ctx context.Context) { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	if pflag.NArg() < 1 {
		printUsage()
		os.Exit(2)
	}

	cmd, args := pflag.Arg(0), pflag.Args()[1:]
	switch cmd {
	case "activate":
		cmdActivate(ctx, args)
	case "deactivate":
		cmdDeactivate(ctx, args)
	case "list", "ls", "devices":
		cmdList(ctx, args)
	case "status":
		cmdStatus(ctx, args)
	case "control":
		cmdControl(ctx, args)
	case "check":
		cmdCheck(ctx, args)
	case "license":
		cmdLicense(ctx, args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %q\n\n", cmd)
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `usage: pulsesuppress [global flags] <command> [command flags]

Routes a microphone through the RNNoise LADSPA plugin inside PulseAudio and
exposes the result as the virtual source %q.

commands:
  activate    build the noise suppression chain
  deactivate  tear the chain down and restore the previous default source
  list        list available input devices (aliases: ls, devices)
  status      show whether the chain is loaded
  control     get or set the suppression control level
  check       record from the denoised source and report voice activity
  license     show license info
  help        show this help

global flags:
`, routing.DenoisedSourceName)
	pflag.PrintDefaults()
}

// fatalf reports a terminal failure the way the user expects from a CLI:
// a red line on stderr, exit code 1, no stack trace.
func fatalf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func fatalIfError(err error) {
	if err != nil {
		fatalf("%v", err)
	}
}

func newController(ctx context.Context) sourcectl.Controller {
	controller, err := sourcectl.NewControllerAuto(ctx)
	fatalIfError(err)
	return controller
}

func newRouter(controller sourcectl.Controller, needPlugin bool) *routing.Router {
	statePath, err := routing.DefaultStatePath()
	fatalIfError(err)

	pluginPath := ""
	if needPlugin {
		pluginPath, err = routing.FindPlugin()
		fatalIfError(err)
	}

	return routing.NewRouter(controller, statePath, pluginPath)
}
