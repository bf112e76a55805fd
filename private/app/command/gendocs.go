// Copyright 2023 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewGendocs creates a hidden command that renders the markdown documentation
// of the whole command tree into a directory.
func NewGendocs(_ Pather) *cobra.Command {
	var cmd = &cobra.Command{
		Use:    "gendocs <directory>",
		Short:  "Generate documentation",
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Root().DisableAutoGenTag = true

			directory := args[0]
			if err := os.MkdirAll(directory, 0755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
			if err := genMarkdownTree(cmd.Root(), directory); err != nil {
				return fmt.Errorf("generating documentation: %w", err)
			}
			return nil
		},
	}
	return cmd
}

func genMarkdownTree(cmd *cobra.Command, dir string) error {
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.IsAdditionalHelpTopicCommand() {
			continue
		}
		if err := genMarkdownTree(c, dir); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if err := doc.GenMarkdown(cmd, &buf); err != nil {
		return err
	}
	basename := strings.ReplaceAll(cmd.CommandPath(), " ", "_") + ".md"
	return os.WriteFile(filepath.Join(dir, basename), buf.Bytes(), 0666)
}
