package main

import "github.com/nfrund/ipadmin/cmd/ipadmin-cli/cmd"

func main() {
	cmd.Execute()
}
