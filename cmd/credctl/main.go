package main

import (
	"credvault/cmd/credctl/cmd"
)

func main() {
	cmd.Execute()
}
