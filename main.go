package main

import "github.com/josephlewis42/techshell/cmd"

func main() {
	cmd.Execute()
}
