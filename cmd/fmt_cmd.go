package cmd

import (
	"fmt"

	"github.com/dzjyyds666/tomlkit/parse"
	"github.com/dzjyyds666/tomlkit/parse/toml"
	"github.com/dzjyyds666/tomlkit/pkg"
	"github.com/spf13/cobra"
)

type FmtParams struct {
	Input  string `json:"input"`  // input file path
	Output string `json:"output"` // output path, stdout when empty
	Strict bool   `json:"strict"` // require homogeneous arrays
}

var fmtParams *FmtParams

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Rewrite a TOML document in canonical form",
	Run:   fmtRun,
}

func init() {
	fmtParams = &FmtParams{}
	fmtCmd.Flags().StringVarP(&fmtParams.Input, "input", "i", "", "input file path")
	fmtCmd.Flags().StringVarP(&fmtParams.Output, "output", "o", "", "output path")
	fmtCmd.Flags().BoolVarP(&fmtParams.Strict, "strict", "s", false, "require homogeneous arrays")
}

func fmtRun(cmd *cobra.Command, args []string) {
	if len(fmtParams.Input) == 0 {
		fmt.Println("no input file path")
		return
	}
	exist, err := pkg.CheckFileExist(fmtParams.Input)
	if err != nil {
		fmt.Println("check file exist error:", err)
		return
	}
	if !exist {
		fmt.Println("input file not exist")
		return
	}

	opts := &toml.Options{StrictArrays: fmtParams.Strict}
	root, err := parse.TomlFile(fmtParams.Input, opts)
	if err != nil {
		fmt.Println("parse error:", err)
		return
	}
	out, err := toml.ToTOML(root, opts)
	if err != nil {
		fmt.Println("encode error:", err)
		return
	}

	if len(fmtParams.Output) == 0 {
		fmt.Print(out)
		return
	}
	if err := pkg.WriteFile(fmtParams.Output, []byte(out)); err != nil {
		fmt.Println("write error:", err)
	}
}
