package main

import "astscript/internal/cli"

func main() {
	cli.Execute()
}
