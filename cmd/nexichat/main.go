package main

import "github.com/diogo/nexichat/internal/commands"

func main() {
	commands.Execute()
}
