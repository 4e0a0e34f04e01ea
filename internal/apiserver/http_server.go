// Copyright © 2021 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package apiserver

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
)

type httpServer struct {
	name    string
	s       *http.Server
	l       net.Listener
	onClose chan error
}

func newHTTPServer(ctx context.Context, name string, r *mux.Router, onClose chan error) (hs *httpServer, err error) {
	hs = &httpServer{
		name:    name,
		onClose: onClose,
	}
	hs.l, err = hs.createListener(ctx)
	if err == nil {
		hs.s = hs.createServer(ctx, r)
	}
	return hs, err
}

func (hs *httpServer) createListener(ctx context.Context) (net.Listener, error) {
	listenAddr := fmt.Sprintf("%s:%d", config.GetString(config.HTTPAddress), config.GetUint(config.HTTPPort))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgAPIServerStartFailed, listenAddr)
	}
	log.L(ctx).Infof("%s listening on HTTP %s", hs.name, listener.Addr())
	return listener, err
}

func (hs *httpServer) createServer(ctx context.Context, r *mux.Router) *http.Server {
	return &http.Server{
		Handler:      wrapCorsIfEnabled(ctx, r),
		WriteTimeout: config.GetDuration(config.HTTPWriteTimeout),
		ReadTimeout:  config.GetDuration(config.HTTPReadTimeout),
		ConnContext: func(newCtx context.Context, c net.Conn) context.Context {
			l := log.L(ctx).WithField("req", rwtypes.ShortID())
			newCtx = log.WithLogger(newCtx, l)
			l.Debugf("New HTTP connection: remote=%s local=%s", c.RemoteAddr().String(), c.LocalAddr().String())
			return newCtx
		},
	}
}

func (hs *httpServer) serveHTTP(ctx context.Context) {
	serverEnded := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			log.L(ctx).Infof("API server context cancelled - shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(config.HTTPShutdownTimeout))
			defer cancel()
			if err := hs.s.Shutdown(shutdownCtx); err != nil {
				hs.s.Close()
			}
		case <-serverEnded:
			return
		}
	}()

	err := hs.s.Serve(hs.l)
	if err == http.ErrServerClosed {
		err = nil
	}
	close(serverEnded)
	log.L(ctx).Infof("API server complete")

	hs.onClose <- err
}
