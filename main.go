package main

import "github.com/dld-r00f/hcloud-ocf/cmd"

func main() {
	cmd.Execute()
}
