// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelosalatino/dblp-parser/pkg/dblp"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the fields that can be extracted from the dump",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Fields extractable from the DBLP dump:")
		for _, name := range dblp.Features() {
			kind := "single value"
			if dblp.IsListField(name) {
				kind = "list"
			}
			fmt.Printf("  %-10s %s\n", name, kind)
		}
		fmt.Println("\nRecord kinds:")
		for _, kind := range dblp.RecordKinds() {
			fmt.Printf("  %s\n", kind)
		}
		fmt.Println("\nFor more info, see https://dblp.uni-trier.de/faq/index.html")
	},
}

func init() {
	rootCmd.AddCommand(featuresCmd)
}
