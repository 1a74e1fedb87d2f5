package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bowline-go/bowline/pkg/frame"
	"github.com/bowline-go/bowline/pkg/preprocess"
)

var roleColors = map[preprocess.Role]*color.Color{
	preprocess.RoleNumber:   color.New(color.FgCyan),
	preprocess.RoleBinary:   color.New(color.FgGreen),
	preprocess.RoleCategory: color.New(color.FgYellow),
	preprocess.RoleID:       color.New(color.FgRed),
}

func newDetectCommand(fsys afero.Fs) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Print the detected role of every column in a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := frame.ReadCSVFile(fsys, input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range data.ColumnNames() {
				col, err := data.Column(name)
				if err != nil {
					return err
				}
				role := preprocess.DetectRole(col)
				if _, err := fmt.Fprintf(out, "%s\t%s\n", name, roleColors[role].Sprint(string(role))); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV file to inspect")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
