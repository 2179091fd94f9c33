/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"sort"

	"github.com/notargets/lb2dgeom/geomio"
	"github.com/spf13/cobra"
)

// InfoCmd represents the info command
var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the metadata and statistics of a geometry bundle",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			file string
			geo  *geomio.Geometry
		)
		if file, err = cmd.Flags().GetString("file"); err != nil {
			return
		}
		if len(file) == 0 {
			return fmt.Errorf("must supply a geometry file (-F, --file)")
		}
		if geo, err = geomio.Load(file); err != nil {
			return
		}
		PrintInfo(geo)
		return
	},
}

func init() {
	rootCmd.AddCommand(InfoCmd)
	InfoCmd.Flags().StringP("file", "F", "", "geometry bundle written by build or demo")
}

func PrintInfo(geo *geomio.Geometry) {
	fmt.Printf("\"%s\"\t\t= Title\n", geo.Title)
	fmt.Printf("%s\n", geo.Grid)
	names := make([]string, 0, len(geo.Extras))
	for name := range geo.Extras {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r, c := geo.Extras[name].Dims()
		fmt.Printf("Extras[%s] = %dx%d\n", name, r, c)
	}
	geo.Summarize().Print()
}
