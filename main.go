package main

import (
	"fmt"
	"os"

	"ybarda/heshbon/cmd/batchcmd"
	"ybarda/heshbon/cmd/categorize"
	"ybarda/heshbon/cmd/importcmd"
	"ybarda/heshbon/cmd/root"
	"ybarda/heshbon/cmd/rules"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(importcmd.Cmd)
	root.Cmd.AddCommand(batchcmd.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
