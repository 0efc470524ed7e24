package main

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/querybind/binder"
	"github.com/dmitrymomot/querybind/handler"
	"github.com/dmitrymomot/querybind/pkg/httpserver"
	"github.com/dmitrymomot/querybind/pkg/logger"
)

type itemsAPI struct {
	catalog *catalog
	binder  *binder.Binder
	log     *slog.Logger
}

func newRouter(api *itemsAPI) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(api.log))
	r.Get("/readyz", httpserver.HealthCheckHandler(api.log, api.catalog.Ping))

	errorHandler := handler.NewErrorHandler(api.log)

	r.Route("/v1/items", func(r chi.Router) {
		r.Get("/", handler.Wrap(api.list,
			handler.WithBinder[ListItemsQuery](api.binder.Query()),
			handler.WithErrorHandler[ListItemsQuery](errorHandler),
		))
		r.Get("/suggest", api.suggest)
		r.Get("/{id}/events", handler.Wrap(api.events,
			handler.WithBinder[ItemEventsQuery](bindItemID),
			handler.WithBinder[ItemEventsQuery](api.binder.Query()),
			handler.WithErrorHandler[ItemEventsQuery](errorHandler),
		))
	})

	return r
}

func (a *itemsAPI) list(ctx handler.Context, q ListItemsQuery) handler.Response {
	items, total := a.catalog.List(q)
	page, size := q.bounds()
	return handler.JSON(items, handler.WithJSONMeta(map[string]any{
		"total":    total,
		"page":     page,
		"pageSize": size,
	}))
}

func (a *itemsAPI) events(ctx handler.Context, q ItemEventsQuery) handler.Response {
	if _, ok := a.catalog.Get(q.ItemID); !ok {
		return handler.JSONError(handler.ErrNotFound)
	}
	return handler.JSON(a.catalog.Events(q))
}

// suggest never rejects a request: invalid parameters fall back to their
// defaults and are reported under meta.ignored. ListItemsQuery is resolved
// at startup, so TryBindWith cannot panic here.
func (a *itemsAPI) suggest(w http.ResponseWriter, r *http.Request) {
	q, errs, ok := binder.TryBindWith[ListItemsQuery](a.binder, r.URL.Query())
	meta := map[string]any{}
	if !ok {
		meta["ignored"] = errs
		// Fields that failed were zeroed; bind again without them to restore defaults.
		q, _, _ = binder.TryBindWith[ListItemsQuery](a.binder, withoutKeys(r.URL.Query(), errs))
	}

	items, _ := a.catalog.List(q)
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	if err := handler.JSON(names, handler.WithJSONMeta(meta)).Render(w, r); err != nil {
		a.log.ErrorContext(r.Context(), "failed to render suggestions",
			logger.Component("items"),
			logger.RequestID(middleware.GetReqID(r.Context())),
			logger.Error(err),
		)
	}
}

// withoutKeys drops every parameter that matches a key of errs case-insensitively.
func withoutKeys(values url.Values, errs binder.FieldErrors) url.Values {
	out := make(url.Values, len(values))
	for key, vals := range values {
		drop := false
		for field := range errs {
			if strings.EqualFold(key, field) {
				drop = true
				break
			}
		}
		if !drop {
			out[key] = vals
		}
	}
	return out
}
