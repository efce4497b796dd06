package main

import (
	"github.com/robotalks/framlog.go/pkg/cli/sh"
	"github.com/robotalks/framlog.go/pkg/env"

	_ "github.com/robotalks/framlog.go/pkg/cli/cmds/fram"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
