package main

import (
	"boscoin.io/minidao/cmd/minidao/cmd"
)

func main() {
	cmd.Execute()
}
