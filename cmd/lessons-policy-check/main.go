package main

import "github.com/yersmagit/lessons-displayer/cmd/lessons-policy-check/cmd"

func main() {
	cmd.Execute()
}
