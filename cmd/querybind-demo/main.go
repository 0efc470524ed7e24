// Command querybind-demo serves an item catalog whose list and events
// endpoints bind their query strings into typed query models.
package main

import (
	"context"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"time"

	"github.com/dmitrymomot/querybind/binder"
	"github.com/dmitrymomot/querybind/pkg/config"
	"github.com/dmitrymomot/querybind/pkg/httpserver"
	"github.com/dmitrymomot/querybind/pkg/logger"
)

func main() {
	cfg := config.MustLoad[Config](config.WithEnvFiles(".env"))

	log := logger.New(cfg.loggerOptions()...)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := &itemsAPI{
		catalog: newCatalog(time.Now),
		binder:  newQueryBinder(cfg, binder.WithLogger(log)),
		log:     log,
	}

	// Resolve the query models up front so a bad model fails at startup.
	for _, t := range []reflect.Type{
		reflect.TypeFor[ListItemsQuery](),
		reflect.TypeFor[ItemEventsQuery](),
	} {
		if _, err := api.binder.Fields(t); err != nil {
			log.Error("invalid query model", logger.Component("main"), logger.Error(err))
			os.Exit(1)
		}
	}

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, newRouter(api)); err != nil {
		log.Error("server stopped with error", logger.Component("main"), logger.Error(err))
		os.Exit(1)
	}
}
