package main

import "github.com/mcoot/doubles-roundrobin/internal/cli"

func main() {
	cli.Execute()
}
