// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/soar-labs/soar/co"
	"github.com/soar-labs/soar/log"
	"github.com/soar-labs/soar/metrics"
)

var logger = log.WithContext("pkg", "httpserver")

const shutdownTimeout = 5 * time.Second

// StartMetricsServer serves the prometheus registry under /metrics on addr.
// It returns the metrics URL and a function that stops the server.
func StartMetricsServer(addr string) (string, func(), error) {
	h := metrics.HTTPHandler()
	if h == nil {
		return "", nil, errors.New("metrics are not initialized")
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen metrics addr [%v]", addr)
	}

	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(h)
	handler := handlers.CompressHandler(router)

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "err", err)
		}
	})
	return "http://" + listener.Addr().String() + "/metrics", func() {
		srv.Close()
		if !goes.WaitTimeout(shutdownTimeout) {
			logger.Warn("metrics server did not stop in time", "timeout", shutdownTimeout)
		}
	}, nil
}
