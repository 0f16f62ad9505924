package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/xaionaro-go/pulsesuppress/pkg/routing"
	"github.com/xaionaro-go/pulsesuppress/pkg/sourcectl"
)

func TestPrintSourceTable(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printSourceTable(&buf, []sourcectl.Source{
		{Index: 0, Name: "test.device", Description: "Test device description"},
		{Index: 1, Name: "test.device.2 another one", Description: "Test device two description"},
	})

	assert.Equal(t,
		"[0]  test.device                Test device description\n"+
			"[1]  test.device.2 another one  Test device two description\n",
		buf.String(),
	)
}

func TestPrintSourceTableIndexAlignment(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printSourceTable(&buf, []sourcectl.Source{
		{Index: 7, Name: "a", Description: "A"},
		{Index: 123, Name: "b", Description: "B"},
	})

	assert.Equal(t,
		"  [7]  a  A\n"+
			"[123]  b  B\n",
		buf.String(),
	)
}

func TestPrintParams(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printParams(&buf, routing.Params{
		MicName: "alsa_input.usb-mic",
		MicRate: 44100,
		Control: 42,
	})

	assert.Equal(t,
		"Mic name:           alsa_input.usb-mic\n"+
			"Mic sampling rate:  44100 Hz\n"+
			"Control level:      42\n",
		buf.String(),
	)
}
