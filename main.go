package main

import "masterdata-monitor/cmd"

func main() {
	cmd.Execute()
}
