package main

import (
	"github.com/sjzar/trophylodge/cmd/trophylodge"
)

func main() {
	trophylodge.Execute()
}
