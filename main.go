package main

import "github.com/dotcommander/riverwqi/cmd"

func main() {
	cmd.Execute()
}
