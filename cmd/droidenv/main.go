package main

import "droidenv/internal/cli"

func main() {
	cli.Execute()
}
