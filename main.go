package main

import "github.com/gruntjs-updater/transifex-keyvaluejson/cmd"

func main() {
	cmd.Execute()
}
