package main

import (
	"log"

	"github.com/xleven/wxminer/cmd/wxminer"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	wxminer.Execute()
}
