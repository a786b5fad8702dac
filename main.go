package main

import "record-compactor/cmd"

func main() {
	cmd.Execute()
}
