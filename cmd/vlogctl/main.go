package main

import (
	"os"

	vlogctlcmd "github.com/visualvc/versionlog/pkg/vlogctl/cmd"
)

func main() {
	root := vlogctlcmd.NewRootCommand(vlogctlcmd.DefaultConfig())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
