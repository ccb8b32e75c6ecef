// README: Entry point; loads config, wires services, starts HTTP server and the session sweeper.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/ai"
	"wayfarer/internal/config"
	httptransport "wayfarer/internal/http"
	"wayfarer/internal/infra"
	"wayfarer/internal/logger"
	"wayfarer/internal/maps"
	"wayfarer/internal/modules/flight"
	"wayfarer/internal/modules/hotel"
	"wayfarer/internal/modules/pricing"
	"wayfarer/internal/modules/routing"
	"wayfarer/internal/modules/searchcache"
	"wayfarer/internal/modules/session"
	"wayfarer/internal/service"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal(err)
	}
	logger.Init(cfg.Log.Level)
	log := logger.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		hotelCache  hotel.Cache
		flightCache flight.Cache
	)
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.ConnectRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.WithError(err).Warn("redis unavailable; search cache disabled")
		} else {
			defer redisClient.Close()
			cache := searchcache.NewStore(redisClient, cfg.Redis.CacheTTL)
			hotelCache, flightCache = cache, cache
		}
	}

	var finder hotel.Finder
	if cfg.Places.APIKey != "" {
		places, err := maps.NewPlacesService(cfg.Places.APIKey)
		if err != nil {
			log.WithError(err).Warn("places client init failed; using fallback hotels")
		} else {
			finder = places
		}
	}

	var provider flight.Provider
	if cfg.Flights.ClientID != "" && cfg.Flights.ClientSecret != "" {
		provider = flight.NewAmadeusProvider(flight.AmadeusConfig{
			BaseURL:      cfg.Flights.BaseURL,
			ClientID:     cfg.Flights.ClientID,
			ClientSecret: cfg.Flights.ClientSecret,
			Timeout:      cfg.Flights.Timeout,
		})
	} else {
		log.Info("flight provider not configured; using synthetic flights")
	}

	extractor, err := ai.NewExtractor(ctx, cfg.LLM)
	if err != nil {
		log.WithError(err).Warn("llm extractor disabled")
		extractor = nil
	} else if closer, ok := extractor.(interface{ Close() }); ok {
		defer closer.Close()
	}

	pricingSvc := pricing.NewService(pricing.NewStore(pricing.DefaultRate))

	flightSearch := flight.NewSearchService(provider, flightCache, cfg.Flights.MaxResults)
	flightBooking := flight.NewBookingService(flight.NewStore())
	hotelSearch := hotel.NewSearchService(finder, hotelCache, hotel.SearchConfig{
		RadiusM:    cfg.Places.RadiusM,
		MaxResults: cfg.Places.MaxResults,
	})
	hotelBooking := hotel.NewBookingService(hotel.NewStore(), pricingSvc)

	router := routing.NewRouter(routing.Deps{
		FlightSearch:  flightSearch,
		FlightBooking: flightBooking,
		HotelSearch:   hotelSearch,
		HotelBooking:  hotelBooking,
	})

	sessions := session.NewStore()
	assistant := service.NewAssistant(sessions, extractor, router, service.Options{
		HistoryTurns:   cfg.LLM.HistoryTurns,
		ExtractTimeout: cfg.LLM.Timeout,
	})

	gin.SetMode(gin.ReleaseMode)
	handler := httptransport.NewServer(httptransport.ServerDeps{
		Assistant:     assistant,
		FlightSearch:  flightSearch,
		FlightBooking: flightBooking,
		HotelSearch:   hotelSearch,
		HotelBooking:  hotelBooking,
		Version:       version,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes(), ReadHeaderTimeout: 10 * time.Second}

	go sessions.RunSweeper(ctx, cfg.Session.SweepInterval, cfg.Session.MaxAge)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("http shutdown")
		}
	}()

	log.WithField("addr", cfg.HTTP.Addr).WithField("llm_enabled", extractor != nil).Info("wayfarer api listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}

	removed := sessions.SweepExpired(cfg.Session.MaxAge)
	log.WithField("removed", removed).Info("shutdown complete")
}
