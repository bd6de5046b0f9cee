package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/uploadkit/pkg/render"
	"github.com/vango-dev/uploadkit/pkg/toast"
	"github.com/vango-dev/uploadkit/pkg/widget"
)

func previewCmd(a *app) *cobra.Command {
	var (
		flags  widgetFlags
		output string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "preview [paths...]",
		Short: "Select files and render the preview page",
		Long: `Select files and write the document with its image previews
as a standalone HTML page. Preview images are inlined as data URIs.

Examples:
  uploadkit preview -m ./photos > previews.html
  uploadkit preview --out previews.html --pretty cat.png dog.jpg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, a.cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return runPreview(cmd, a, args, out, pretty)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "out", "o", "", "Write the page to this file instead of stdout")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the HTML output")

	return cmd
}

func runPreview(cmd *cobra.Command, a *app, paths []string, out io.Writer, pretty bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newSession(nil, a.cfg, buildPicker(a.cfg, paths), a.logger,
		widget.WithNotifier(toast.NewTerminal(cmd.ErrOrStderr())))

	if err := s.widget.Open(ctx); err != nil {
		return pickError(err)
	}
	if len(s.widget.Files()) == 0 {
		warn(cmd.ErrOrStderr(), "No files selected")
	}

	renderer := render.NewRenderer(render.RendererConfig{Pretty: pretty, Loader: s.urls})
	var err error
	s.widget.Sync(func() {
		err = renderer.RenderPage(out, render.PageData{
			Body:  s.doc.Body(),
			Title: a.cfg.Serve.Title,
		})
	})
	return err
}
