package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/udu-dev/udu/pkg/exitcodes"
	"github.com/udu-dev/udu/pkg/scheme"
)

func newSchemesCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schemes [name]",
		Short: "List color schemes",
		Long: `List the color schemes of every output surface. With a name, only that
scheme is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listing := make(map[scheme.Section]map[string]scheme.Theme)
			for _, section := range scheme.Sections() {
				for _, name := range scheme.Names(section) {
					if len(args) == 1 && name != args[0] {
						continue
					}
					theme, _ := scheme.Lookup(section, name)
					if listing[section] == nil {
						listing[section] = make(map[string]scheme.Theme)
					}
					listing[section][name] = theme
				}
			}
			if len(listing) == 0 {
				return &exitcodes.ExitCodeError{
					Code: exitcodes.ExitUnknownScheme,
					Err:  fmt.Errorf("%w %q", scheme.ErrUnknownScheme, args[0]),
				}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(listing); err != nil {
					return &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: err}
				}
				return enc.Close()
			case "text":
				for _, section := range scheme.Sections() {
					for _, name := range scheme.Names(section) {
						theme, ok := listing[section][name]
						if !ok {
							continue
						}
						parts := make([]string, 0, len(theme))
						for _, role := range theme.Roles() {
							parts = append(parts, fmt.Sprintf("%s=%s", role, theme[role]))
						}
						fmt.Fprintf(out, "%s/%s: %s\n", section, name, strings.Join(parts, " "))
					}
				}
				return nil
			default:
				return &exitcodes.ExitCodeError{
					Code: exitcodes.ExitInputConfigurationError,
					Err:  fmt.Errorf("unsupported output format %q (want text or yaml)", format),
				}
			}
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text or yaml")
	return cmd
}
