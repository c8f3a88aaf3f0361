package main

import "github.com/WolpertingerLabs/claude-code-ui-sub000/cmd/claude-code-ui/commands"

func main() {
	commands.Execute()
}
