package main

import "webqa/internal/cli"

func main() {
	cli.Execute()
}
