package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootPage = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command page
const childPage = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// navOrder is each command's position in the docs' navigation
var navOrder = map[string]int{
	"junkread":          0,
	"junkread_simulate": 1,
	"junkread_import":   2,
	"junkread_recover":  3,
	"junkread_cover":    4,
	"junkread_grid":     5,
	"junkread_docs":     6,
}

// docsCmd is for writing the Markdown documentation of every command
var docsCmd = &cobra.Command{
	Use:    "docs",
	Short:  "Write Markdown documentation for every command",
	Hidden: true,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		if err := makeDocs(dir); err != nil {
			stderr.Fatal(err)
		}
	},
}

// makeDocs parses the commands and outputs Markdown documentation files
func makeDocs(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	RootCmd.DisableAutoGenTag = true
	if err := doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler); err != nil {
		return fmt.Errorf("failed to write docs to %s: %w", dir, err)
	}
	return nil
}

// docBase is the command's page name, ex: "junkread_recover"
func docBase(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	base := docBase(filename)
	if base == RootCmd.Name() {
		return fmt.Sprintf(rootPage, base, navOrder[base])
	}
	return fmt.Sprintf(childPage, strings.TrimPrefix(base, RootCmd.Name()+"_"), RootCmd.Name(), navOrder[base])
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	if base := docBase(filename); base != RootCmd.Name() {
		return base
	}
	return "/"
}

// set flags
func init() {
	docsCmd.Flags().StringP("dir", "d", "docs", "output directory")

	RootCmd.AddCommand(docsCmd)
}
