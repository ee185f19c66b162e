// cmd/porthodom/main.go
package main

import (
	"porthodom/internal/app"
	"porthodom/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
