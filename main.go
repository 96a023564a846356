package main

import "github.com/dotcommander/mplint/cmd"

func main() {
	cmd.Execute()
}
