package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/uploadkit/internal/errors"
	"github.com/vango-dev/uploadkit/pkg/toast"
	"github.com/vango-dev/uploadkit/pkg/vdom"
	"github.com/vango-dev/uploadkit/pkg/widget"
)

func uploadCmd(a *app) *cobra.Command {
	var flags widgetFlags

	cmd := &cobra.Command{
		Use:   "upload [paths...]",
		Short: "Select files and upload them",
		Long: `Select files and upload them as multipart/form-data.

Files are taken from the given paths, from --dir, or from an S3
bucket. With --interactive a prompt lists the candidates. Without
--multiple only the first accepted file is selected.

Examples:
  uploadkit upload --url https://example.com/upload photo.png
  uploadkit upload -m -a image/* -d ./photos -u https://example.com/upload
  uploadkit upload -e album=summer --s3-bucket uploads -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, a.cfg); err != nil {
				return err
			}
			return runUpload(cmd, a, args)
		},
	}

	flags.register(cmd)
	return cmd
}

func runUpload(cmd *cobra.Command, a *app, paths []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	s := newSession(nil, a.cfg, buildPicker(a.cfg, paths), a.logger,
		widget.WithNotifier(toast.NewTerminal(cmd.ErrOrStderr())))

	if err := s.widget.Open(ctx); err != nil {
		return pickError(err)
	}

	files := s.widget.Files()
	for _, f := range files {
		info(out, "%s (%s, %d bytes)", f.Filename, f.ContentType, f.Size)
	}
	if n := len(vdom.QuerySelectorAll(s.widget.PreviewContainer(), "img")); n > 0 {
		info(out, "%d image preview(s)", n)
	}

	pending, err := s.widget.Submit(ctx)
	if err != nil {
		return errors.New("E161").Wrap(err)
	}
	if err := pending.Wait(); err != nil {
		return errors.New("E161").Wrap(err)
	}

	success(out, "Uploaded %d file(s) to %s", len(files), a.cfg.Widget.EndpointURL)
	return nil
}
