package main

import (
	_ "time/tzdata"

	"megasena-monitor/cmd"
)

func main() {
	cmd.Execute()
}
