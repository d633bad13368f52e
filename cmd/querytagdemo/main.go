// cmd/querytagdemo/main.go

// querytagdemo is a small server showing the querystring directive in
// action: a paginated, filterable colour listing whose navigation links
// are all built by {{ querystring ... }} directives.
package main

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dalemusser/querytag/config"
	"github.com/dalemusser/querytag/logging"
	"github.com/dalemusser/querytag/metrics"
	"github.com/dalemusser/querytag/pagination"
	"github.com/dalemusser/querytag/tag"
	"github.com/dalemusser/querytag/templates"
	"github.com/dalemusser/querytag/webutil"
)

const listPage = `<!DOCTYPE html>
<html>
<head><title>colours</title></head>
<body>
<h1>Colours (page {{ .Page.Page }} of {{ .Page.TotalPages }})</h1>
<form method="get" action="/">
  <input type="text" name="q" value="{{ .Query }}" placeholder="filter">
</form>
<ul>
{{ range .Items }}<li>{{ . }}</li>
{{ end }}</ul>
<nav>
  {{ if .Page.HasPrev }}<a href="{{ querystring .QS .PrevDirective }}">&laquo; prev</a>{{ end }}
  {{ if .Page.HasNext }}<a href="{{ querystring .QS .NextDirective }}">next &raquo;</a>{{ end }}
  <a href="{{ querystring .QS "q=None page=None" }}">clear filters</a>
</nav>
</body>
</html>
`

var colours = []string{
	"amber", "aqua", "azure", "beige", "black", "blue", "bronze", "brown",
	"coral", "crimson", "cyan", "gold", "gray", "green", "indigo", "ivory",
	"jade", "lavender", "lime", "magenta", "maroon", "mauve", "navy",
	"ochre", "olive", "orange", "pink", "plum", "purple", "red", "rose",
	"ruby", "salmon", "sienna", "silver", "teal", "umber", "violet",
	"white", "yellow",
}

type listData struct {
	QS            *tag.Context
	Page          pagination.Page
	Items         []string
	Query         string
	PrevDirective string
	NextDirective string
}

func main() {
	bootstrap := logging.BootstrapLogger()
	defer bootstrap.Sync()

	cfg, err := config.Load(bootstrap)
	if err != nil {
		bootstrap.Error("config load failed", zap.Error(err))
		os.Exit(1)
	}

	logger := logging.MustBuildLogger(cfg.LogLevel, cfg.Env)
	defer logger.Sync()
	logger.Info("starting querytagdemo",
		zap.String("env", cfg.Env),
		zap.Int("http_port", cfg.HTTPPort),
	)

	metrics.RegisterDefault(logger)

	page, err := template.New("list").Funcs(templates.Funcs()).Parse(listPage)
	if err != nil {
		logger.Fatal("parse template", zap.Error(err))
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.Recoverer(logger))
	r.Use(metrics.HTTPMetrics)
	r.Use(logging.RequestLogger(logger))

	r.Handle("/metrics", metrics.Handler())
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		query := req.URL.Query().Get("q")
		var matched []string
		for _, c := range colours {
			if query == "" || strings.Contains(c, query) {
				matched = append(matched, c)
			}
		}

		pg := pagination.FromRequest(req)
		pg.SetTotal(len(matched))
		lo := min(pg.Offset(), len(matched))
		hi := min(lo+pg.PerPage, len(matched))

		vars := map[string]any{
			"prev":         pg.Prev(),
			"next":         pg.Next(),
			"remove_blank": cfg.RemoveBlank,
			"remove_utm":   cfg.RemoveUTM,
		}
		data := listData{
			QS:            webutil.RenderContext(req, vars),
			Page:          pg,
			Items:         matched[lo:hi],
			Query:         query,
			PrevDirective: "page=prev remove_blank=remove_blank remove_utm=remove_utm",
			NextDirective: "page=next remove_blank=remove_blank remove_utm=remove_utm",
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			logger.Error("render failed", zap.Error(err))
		}
	})

	ctx, cancel := webutil.WithShutdownSignals(context.Background(), logger)
	defer cancel()

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("listening", zap.String("addr", addr))
	if err := webutil.Serve(ctx, addr, r, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
