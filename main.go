package main

import "github.com/longkey1/finchat/cmd"

func main() {
	cmd.Execute()
}
