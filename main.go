package main

import "github.com/ryanb/mediavault/cmd"

func main() {
	cmd.Execute()
}
