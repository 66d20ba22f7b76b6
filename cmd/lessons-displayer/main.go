package main

import "github.com/yersmagit/lessons-displayer/cmd/lessons-displayer/cmd"

func main() {
	cmd.Execute()
}
