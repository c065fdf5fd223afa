package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/gitobj/pkg/object"
	"github.com/odvcencio/gitobj/pkg/repo"
	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	var message string
	var tagger string
	var signKey string

	cmd := &cobra.Command{
		Use:   "tag <name> <target-id>",
		Short: "Create an annotated tag object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("tag: name is required")
			}
			if strings.TrimSpace(message) == "" {
				return fmt.Errorf("tag: message is required")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}
			target, err := r.Lookup(args[1], object.TypeAny)
			if err != nil {
				return err
			}

			obj, err := repo.New(r, object.TypeTag)
			if err != nil {
				return err
			}
			tag := obj.(*repo.Tag)
			tag.SetName(name)
			tag.SetMessage(message)
			if err := tag.SetTarget(target); err != nil {
				return err
			}

			identity, err := parseTaggerFlag(tagger)
			if err != nil {
				return err
			}
			tag.SetTagger(identity)

			if signKey != "" {
				signer, keyPath, err := newSSHTagSigner(signKey)
				if err != nil {
					return err
				}
				sig, err := signer(tagPayload(tag))
				if err != nil {
					return fmt.Errorf("tag: sign with %q: %w", keyPath, err)
				}
				tag.SetMessage(message + "\n" + sig)
			}

			id, err := tag.Write()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "tag message")
	cmd.Flags().StringVar(&tagger, "tagger", "", `tagger as "Name <email>" (defaults to "unknown")`)
	cmd.Flags().StringVarP(&signKey, "sign-key", "s", "", "SSH private key to sign the tag with")
	return cmd
}

// tagPayload renders the byte sequence a signature covers: the tag's
// metadata and message as they stand before the signature is attached.
func tagPayload(t *repo.Tag) []byte {
	var b strings.Builder
	if target := t.Target(); target != nil {
		if id, ok := target.ID(); ok {
			fmt.Fprintf(&b, "object %s\n", id)
		}
		fmt.Fprintf(&b, "type %s\n", target.Type())
	}
	fmt.Fprintf(&b, "tag %s\n", t.Name())
	if tagger, ok := t.Tagger(); ok {
		fmt.Fprintf(&b, "tagger %s\n", tagger)
	}
	b.WriteString("\n")
	b.WriteString(t.Message())
	return []byte(b.String())
}

// parseTaggerFlag turns a "Name <email>" flag value into an Identity
// stamped with the current time. An empty value falls back to
// "unknown", matching the permissive CLI behavior for metadata.
func parseTaggerFlag(s string) (object.Identity, error) {
	now := time.Now().Unix()
	s = strings.TrimSpace(s)
	if s == "" {
		return object.Identity{Name: "unknown", When: now}, nil
	}

	open := strings.LastIndex(s, "<")
	if open < 0 || !strings.HasSuffix(s, ">") {
		return object.Identity{}, fmt.Errorf(`tag: tagger must look like "Name <email>", got %q`, s)
	}
	return object.Identity{
		Name:  strings.TrimSpace(s[:open]),
		Email: s[open+1 : len(s)-1],
		When:  now,
	}, nil
}
