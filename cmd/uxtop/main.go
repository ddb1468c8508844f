//go:build linux

package main

import (
	"fmt"
	"os"

	"github.com/life2harsh/unixpbl/internal/actions"
	"github.com/life2harsh/unixpbl/internal/config"
	"github.com/life2harsh/unixpbl/internal/engine"
	"github.com/life2harsh/unixpbl/internal/procfs"
	"github.com/life2harsh/unixpbl/internal/ui"
)

func main() {
	cfg := config.FromFlags(os.Args[1:])
	reader := procfs.New()
	eng := engine.New(cfg, reader, actions.Executor{})

	if err := ui.Run(cfg, eng, reader); err != nil {
		fmt.Fprintln(os.Stderr, "uxtop:", err)
		os.Exit(1)
	}
}
