package main

import "democat/internal/cli"

func main() {
	cli.Execute()
}
