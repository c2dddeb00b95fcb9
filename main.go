package main

import "deptsite/internal/cli"

func main() {
	cli.Execute()
}
