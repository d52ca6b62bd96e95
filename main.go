package main

import (
	"github.com/Kiranpjk/RapidGigs-sub001/cmd/app"
)

func main() {
	app.New().Run()
}
