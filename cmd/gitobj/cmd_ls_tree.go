package main

import (
	"fmt"

	"github.com/odvcencio/gitobj/pkg/object"
	"github.com/odvcencio/gitobj/pkg/repo"
	"github.com/spf13/cobra"
)

func newLsTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-tree <tree-id>",
		Short: "List the entries of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			obj, err := r.Lookup(args[0], object.TypeTree)
			if err != nil {
				return err
			}
			tree := obj.(*repo.Tree)

			out := cmd.OutOrStdout()
			for i := 0; i < tree.Len(); i++ {
				entry, err := tree.EntryByIndex(i)
				if err != nil {
					return err
				}
				mode, _ := entry.Attributes()
				id, _ := entry.ID()
				name, _ := entry.Name()

				kind := object.TypeBlob
				if target, err := entry.ToObject(); err == nil {
					kind = target.Type()
				}
				fmt.Fprintf(out, "%06o %s %s\t%s\n", mode, kind, id, name)
			}
			return nil
		},
	}
}
