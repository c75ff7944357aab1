package main

import "Quill/cmd/quillctl/commands"

func main() {
	commands.Execute()
}
