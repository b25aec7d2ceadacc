package main

import (
	_ "github.com/tributary-io/tributary/processor/csvfield"
	"github.com/tributary-io/tributary/protocol"
)

func main() {
	protocol.Execute()
}
