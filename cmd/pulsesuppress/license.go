package main

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/spf13/pflag"
)

//go:embed data/license_info.txt
var licenseInfo string

func cmdLicense(ctx context.Context, args []string) {
	fs := pflag.NewFlagSet("license", pflag.ExitOnError)
	fatalIfError(fs.Parse(args))
	fmt.Print(licenseInfo)
}
