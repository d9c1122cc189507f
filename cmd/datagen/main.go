package main

import "github.com/deepceutix/datagen/internal/cli"

func main() {
	cli.Execute()
}
