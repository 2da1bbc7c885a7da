package main

import "github.com/meysamhadeli/scriptbox/cmd"

func main() {
	cmd.Execute()
}
