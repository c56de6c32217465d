package main

import "github.com/theirongolddev/notetime/cmd"

func main() {
	cmd.Execute()
}
