package main

import "github.com/mvntools/mvndeploy/cmd"

func main() {
	cmd.Execute()
}
