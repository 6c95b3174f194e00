package main

import (
	"fmt"
	"os"

	"github.com/sbelkacem/gosocial/cmd/cli/auth"
	"github.com/sbelkacem/gosocial/cmd/cli/posts"
	"github.com/sbelkacem/gosocial/cmd/cli/root"
)

func main() {
	auth.Init(root.RootCmd)
	posts.Init(root.RootCmd)

	if err := root.RootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
