package main

import "github.com/veriface/veriface/cmd"

func main() {
	cmd.Execute()
}
