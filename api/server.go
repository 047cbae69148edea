// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/log"
	metric "github.com/luxfi/metric"
	"github.com/luxfi/utils/json"
	"github.com/rs/cors"

	"github.com/luxfi/minter/config"
)

const (
	rpcPath    = "/ext/minter"
	healthPath = "/health"

	readHeaderTimeout = 10 * time.Second
)

// Server serves the minter JSON-RPC API over HTTP.
type Server struct {
	log  log.Logger
	http *http.Server
}

// NewServer builds the HTTP server. The RPC service is mounted at
// /ext/minter; request metrics are recorded on the provided registry.
func NewServer(cfg config.Config, logger log.Logger, registry metric.Registry, svc *Service) (*Server, error) {
	rpcServer := rpc.NewServer()
	codec := json.NewCodec()
	rpcServer.RegisterCodec(codec, "application/json")
	rpcServer.RegisterCodec(codec, "application/json;charset=UTF-8")

	in := newInterceptor(registry)
	rpcServer.RegisterInterceptFunc(in.interceptRequest)
	rpcServer.RegisterAfterFunc(in.afterRequest)

	if err := rpcServer.RegisterService(svc, "minter"); err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	router.Handle(rpcPath, rpcServer)
	router.HandleFunc(healthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"healthy":true}`))
	}).Methods(http.MethodGet)

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
	}).Handler(router)

	return &Server{
		log: logger,
		http: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort),
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// Serve blocks until the server is shut down or fails.
func (s *Server) Serve() error {
	s.log.Info("serving API",
		log.String("address", s.http.Addr),
		log.String("rpcPath", rpcPath),
	)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down API")
	return s.http.Shutdown(ctx)
}
