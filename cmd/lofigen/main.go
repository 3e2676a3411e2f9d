package main

import "github.com/ximi-ai/lofigen/internal/cli"

func main() {
	cli.Main()
}
