package main

import "github.com/mcoot/wwfstate/internal/cli"

func main() {
	cli.Execute()
}
