package main

import "github.com/Alixocracy/jast/internal/cli"

func main() {
	cli.Execute()
}
