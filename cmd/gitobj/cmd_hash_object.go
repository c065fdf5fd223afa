package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/gitobj/pkg/object"
	"github.com/spf13/cobra"
)

func newHashObjectCmd() *cobra.Command {
	var typeName string
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-object <file>",
		Short: "Compute an object id, optionally writing the object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := object.ParseType(typeName)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}

			id := object.HashObject(t, data)
			if write {
				st, err := object.OpenStore(".")
				if err != nil {
					return err
				}
				if id, err = st.Write(t, data); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "blob", "object type (commit, tree, blob, tag)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the object into the store")
	return cmd
}
