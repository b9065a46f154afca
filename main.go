package main

import "github.com/gaurav-prasanna/themepipe/cmd"

func main() {
	cmd.Execute()
}
