package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Beaver-Company/helix/pkg/config"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "print the JSON Schema of the cluster config surface",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.MarshalSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
