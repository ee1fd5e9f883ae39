package main

import "wanderplan/internal/cli"

func main() {
	cli.Execute()
}
