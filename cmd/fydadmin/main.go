package main

import "github.com/fydblock/fydadmin/internal/cli"

func main() {
	cli.Execute()
}
