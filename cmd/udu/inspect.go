package main

import (
	"errors"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/udu-dev/udu/pkg/decode"
	"github.com/udu-dev/udu/pkg/exitcodes"
	"github.com/udu-dev/udu/pkg/host"
	"github.com/udu-dev/udu/pkg/scheme"
	"github.com/udu-dev/udu/pkg/sink"
	"github.com/udu-dev/udu/pkg/value"
)

func newInspectCmd() *cobra.Command {
	var (
		comment string
		show    bool
	)
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Render a JSON or YAML document",
		Long: `Decode a JSON or YAML document and print it the way the debugger
renders values. Member order follows the document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadDocument(AppFs, args[0])
			if err != nil {
				return err
			}
			d := newDebugger(cmd)
			if !show {
				d.Log(v, comment)
				return nil
			}
			d.Show(v, comment)
			flushOverlay(d.Host())
			return nil
		},
	}
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "comment printed next to the value type")
	cmd.Flags().BoolVar(&show, "show", false, "route the value by the showOutputDefault setting")
	return cmd
}

// flushOverlay prints the overlay list, oldest first, since a terminal has no
// window to show it in.
func flushOverlay(b host.Binding) {
	mem, ok := b.Overlay.(*sink.MemoryOverlay)
	if !ok {
		return
	}
	msgs := mem.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		b.Messages.Emit(msgs[i])
	}
	if text, ok := mem.Observed(); ok {
		b.Messages.Emit(value.Message{}.Add("Observer: ", scheme.RoleSlave).Add(text, scheme.RoleMaster))
	}
	mem.Clear()
}

func loadDocument(fs afero.Fs, path string) (any, error) {
	if _, err := decode.FormatOf(path); err != nil {
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitInputConfigurationError, Err: err}
	}
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: err}
	}
	if !exists {
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitInputFileNotFound, Err: errors.New("file not found: " + path)}
	}
	v, err := decode.File(fs, path)
	if err != nil {
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitDecodeError, Err: err}
	}
	return v, nil
}
