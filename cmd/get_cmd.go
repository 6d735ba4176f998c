package cmd

import (
	"fmt"
	"strings"

	"github.com/dzjyyds666/tomlkit/parse"
	"github.com/dzjyyds666/tomlkit/parse/toml"
	"github.com/dzjyyds666/tomlkit/pkg"
	"github.com/spf13/cobra"
)

type GetParams struct {
	Find  string `json:"find"`  // dotted key to look up
	Input string `json:"input"` // input file path
}

var getParams *GetParams

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Look up a dotted key in a TOML document",
	Run:   getRun,
}

func init() {
	getParams = &GetParams{}
	getCmd.Flags().StringVarP(&getParams.Find, "find", "f", "", "dotted key to find")
	getCmd.Flags().StringVarP(&getParams.Input, "input", "i", "", "input file path")
}

func getRun(cmd *cobra.Command, args []string) {
	if len(getParams.Input) == 0 {
		fmt.Println("no input file path")
		return
	}
	if len(getParams.Find) == 0 {
		fmt.Println("no key to find")
		return
	}
	exist, err := pkg.CheckFileExist(getParams.Input)
	if err != nil {
		fmt.Println("check file exist error:", err)
		return
	}
	if !exist {
		fmt.Println("input file not exist")
		return
	}

	root, err := parse.TomlFile(getParams.Input, nil)
	if err != nil {
		fmt.Println("parse error:", err)
		return
	}
	n, ok := toml.Get(root, strings.Split(getParams.Find, ".")...)
	if !ok {
		fmt.Println("key not found:", getParams.Find)
		return
	}
	switch n.Kind() {
	case toml.KindTable, toml.KindArray:
		fmt.Printf("%v\n", toml.ToUntyped(n))
	default:
		fmt.Printf("%v\n", n.Value())
	}
}
