package main

import (
	"boscoin.io/herehere/cmd/herehere/cmd"
)

func main() {
	cmd.Execute()
}
