package main

import "github.com/wenci-bit/LifePRG-sub002/cmd/lifeprg/root"

func main() {
	root.Execute()
}
