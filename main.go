package main

import "github.com/glasspay/paytrack/cmd"

func main() {
	cmd.Execute()
}
