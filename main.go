package main

import "github.com/hayatroid/daily-llm/cmd"

func main() {
	cmd.Execute()
}
