package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/uploadkit/pkg/metrics"
	"github.com/vango-dev/uploadkit/pkg/server"
	"github.com/vango-dev/uploadkit/pkg/toast"
	"github.com/vango-dev/uploadkit/pkg/vdom"
	"github.com/vango-dev/uploadkit/pkg/widget"
)

const previewsID = "previews"

func serveCmd(a *app) *cobra.Command {
	var (
		flags widgetFlags
		host  string
		port  int
	)

	cmd := &cobra.Command{
		Use:   "serve [paths...]",
		Short: "Start the preview server",
		Long: `Start an HTTP server that renders the upload widget.

The page has buttons to open the picker and to submit the selection.
Notifications are pushed to the browser over a WebSocket and
Prometheus metrics are served at /metrics.

Examples:
  uploadkit serve -d ./photos -u https://example.com/upload
  uploadkit serve --port 9000 --host 0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				a.cfg.Serve.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Serve.Port = port
			}
			if err := flags.apply(cmd, a.cfg); err != nil {
				return err
			}

			srv := newServer(a, args)
			success(cmd.OutOrStdout(), "Serving on %s", a.cfg.ServeURL())
			return srv.Run()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")

	return cmd
}

// newServer builds the preview page document, its widget and the server.
func newServer(a *app, paths []string) *server.Server {
	doc := vdom.NewDocument()
	vdom.AppendChild(doc.Body(), server.Controls())
	vdom.AppendChild(doc.Body(), vdom.Section(
		vdom.ID(previewsID),
		vdom.Class("uploadkit-previews"),
		vdom.AriaLive("polite"),
	))

	cfg := *a.cfg
	if cfg.Widget.PreviewContainer == "" {
		cfg.Widget.PreviewContainer = "#" + previewsID
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(metrics.WithRegistry(reg))
	hub := server.NewHub(a.logger, m)
	s := newSession(doc, &cfg, buildPicker(&cfg, paths), a.logger,
		widget.WithNotifier(toast.Multi(
			toast.EmitNotifier{Emitter: hub},
			toast.LogNotifier{Logger: a.logger},
		)),
		widget.WithMetrics(m),
	)

	return server.New(doc, s.widget, hub, &server.Config{
		Address:  cfg.ServeAddress(),
		Title:    cfg.Serve.Title,
		Loader:   s.urls,
		Gatherer: reg,
		Logger:   a.logger,
	})
}
