package main

import "github.com/chefkoch/chefkoch/pkg/cli"

func main() {
	cli.Execute()
}
