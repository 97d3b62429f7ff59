package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/skybi/climate-server/internal/api/schema"
	"github.com/skybi/climate-server/internal/climate"
	"github.com/skybi/climate-server/internal/config"
	"github.com/skybi/climate-server/internal/feed"
	"github.com/skybi/climate-server/internal/station"
)

// Service represents the climate API service
type Service struct {
	server *http.Server

	Config    *config.Config
	Index     *station.Index
	Directory *station.Directory
	Climate   *climate.Cache

	writer *schema.Writer
}

// Startup starts up the climate API
func (service *Service) Startup(errs chan<- error) {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the climate API experienced an unexpected error")
		},
	}

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://*", "https://*"},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	// Register the API endpoint handlers
	router.Get("/v1/stations", service.EndpointSearchStations)
	router.Get("/v1/stations/stream", service.EndpointStreamStations)
	router.Get("/v1/climate", service.EndpointGetClimate)

	// Start up the server
	server := &http.Server{
		Addr:    service.Config.APIListenAddress,
		Handler: router,
	}
	service.server = server
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown shuts down the climate API
func (service *Service) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}

// writeFeedError translates an upstream feed error into the corresponding API error
func (service *Service) writeFeedError(writer http.ResponseWriter, err error) {
	var unavailable *feed.UnavailableError
	if errors.As(err, &unavailable) {
		log.Warn().Err(err).Msg("an upstream feed is unavailable")
		service.writer.WriteErrors(writer, http.StatusBadGateway, schema.ErrSourceUnavailable)
		return
	}
	var malformed *feed.MalformedError
	if errors.As(err, &malformed) {
		log.Warn().Err(err).Msg("an upstream feed is malformed")
		service.writer.WriteErrors(writer, http.StatusBadGateway, schema.ErrSourceMalformed)
		return
	}
	service.writer.WriteInternalError(writer, err)
}
