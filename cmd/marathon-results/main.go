package main

import "github.com/pfrederiksen/marathon-results/internal/cli"

func main() {
	cli.Execute()
}
