package main

import "github.com/mcoot/cornhole/internal/cli"

func main() {
	cli.Execute()
}
