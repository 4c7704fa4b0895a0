package main

import (
	"errors"
	"log"
	"os"

	"hashbench/cmd/hashbench/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		// 诊断信息已经打印过了，这里只设置退出码
		if errors.Is(err, commands.ErrUnknownCommand) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
