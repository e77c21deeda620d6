package main

import "github.com/eslsoft/studyengine/cmd"

func main() {
	cmd.Execute()
}
