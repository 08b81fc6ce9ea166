package main

import (
	"github.com/viant/mcp-proxy"
	_ "github.com/viant/scy/kms/blowfish"
	"log"
	"os"
)

func main() {
	if err := proxy.Run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
