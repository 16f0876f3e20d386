package main

import "github.com/chatmd/chatmd/cmd"

func main() {
	cmd.Execute()
}
