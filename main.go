package main

import "github.com/whtowbin/Pynams/cli"

func main() {
	cli.Execute()
}
