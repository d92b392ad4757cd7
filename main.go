package main

import "github.com/luthersystems/scopelisp/cmd"

func main() {
	cmd.Execute()
}
