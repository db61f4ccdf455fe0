package main

import "github.com/khanhnv2901/srcaudit-cli/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
