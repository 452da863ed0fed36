package main

import (
	"github.com/trackgoals/trackgoals/cmd"
)

func main() {
	cmd.Execute()
}
