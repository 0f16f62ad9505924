package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/xaionaro-go/pulsesuppress/pkg/routing"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl"
)

// promptDevice shows the device table and asks until the user picks an
// existing device. An empty answer selects the current default source.
func promptDevice(
	ctx context.Context,
	router *routing.Router,
) (sourcectl.Source, error) {
	sources, err := router.InputSources(ctx)
	if err != nil {
		return sourcectl.Source{}, err
	}
	printSourceTable(os.Stdout, sources)

	defaultSource, err := router.SelectSource(ctx, "")
	if err != nil {
		return sourcectl.Source{}, err
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf(
			"%s or %s of device to use [%d]: ",
			color.YellowString("Number"),
			color.BlueString("name"),
			defaultSource.Index,
		)
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return sourcectl.Source{}, errPromptAborted
			}
			return sourcectl.Source{}, fmt.Errorf("unable to read the answer: %w", err)
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			return defaultSource, nil
		}

		source, err := router.SelectSource(ctx, answer)
		if err == nil {
			return source, nil
		}
		if errors.Is(err, sourcectl.ErrNoSuchSource) {
			color.Red("Invalid device number or name.")
			continue
		}
		return sourcectl.Source{}, err
	}
}
