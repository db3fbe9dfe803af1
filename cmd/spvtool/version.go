// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/btcsuite/btcspv/internal/version"
)

// versionCmd defines the configuration options for the version command.
type versionCmd struct{}

var (
	// versionCfg defines the configuration options for the command.
	versionCfg = versionCmd{}
)

// Usage overrides the usage display for the command.
func (cmd *versionCmd) Usage() string {
	return ""
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *versionCmd) Execute(args []string) error {
	return cmd.run(os.Stdout)
}

func (cmd *versionCmd) run(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s version %s (Go version %s %s/%s)\n",
		appName(), version.String(), runtime.Version(), runtime.GOOS,
		runtime.GOARCH)
	return err
}
