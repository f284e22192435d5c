package main

import "rmod/cmd/cli/app/cmd"

func main() {
	cmd.Execute()
}
