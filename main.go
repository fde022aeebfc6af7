package main

import (
	_ "embed"

	"github.com/AlirezaNezami96/note-reminder-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
