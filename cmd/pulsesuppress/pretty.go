package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/xaionaro-go/pulsesuppress/pkg/routing"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl"
)

// printSourceTable renders the device list as aligned columns. Widths are
// computed on the raw strings, the colors are applied afterwards, so the
// escape sequences do not break the alignment.
func printSourceTable(w io.Writer, sources []sourcectl.Source) {
	var idxWidth, nameWidth int
	for _, source := range sources {
		if l := len(fmt.Sprintf("[%d]", source.Index)); l > idxWidth {
			idxWidth = l
		}
		if l := len(source.Name); l > nameWidth {
			nameWidth = l
		}
	}

	for _, source := range sources {
		rawIdx := fmt.Sprintf("%d", source.Index)
		fmt.Fprintf(w, "%s[%s]  %s%s  %s\n",
			strings.Repeat(" ", idxWidth-len(rawIdx)-2),
			color.YellowString(rawIdx),
			color.BlueString(source.Name),
			strings.Repeat(" ", nameWidth-len(source.Name)),
			source.Description,
		)
	}
}

func printParams(w io.Writer, params routing.Params) {
	underline := color.New(color.Underline).SprintFunc()
	fmt.Fprintf(w, "%s           %s\n", underline("Mic name:"), params.MicName)
	fmt.Fprintf(w, "%s  %d Hz\n", underline("Mic sampling rate:"), params.MicRate)
	fmt.Fprintf(w, "%s      %d\n", underline("Control level:"), params.Control)
}
