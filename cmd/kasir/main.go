package main

import "github.com/tunasmustika/kasir/internal/cli"

func main() {
	cli.Execute()
}
