// cmd/fquack/main.go
package main

import (
	"fquack/internal/app"
	"fquack/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
