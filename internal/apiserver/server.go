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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/gorilla/mux"
	"github.com/kaleido-io/rewardd/internal/config"
	"github.com/kaleido-io/rewardd/internal/i18n"
	"github.com/kaleido-io/rewardd/internal/log"
	"github.com/kaleido-io/rewardd/internal/metrics"
	"github.com/kaleido-io/rewardd/internal/orchestrator"
	"github.com/kaleido-io/rewardd/internal/rwtypes"
	"github.com/kaleido-io/rewardd/internal/wsserver"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the external interface for the API Server
type Server interface {
	Serve(ctx context.Context, o orchestrator.Orchestrator) error
}

type apiServer struct {
	apiTimeout     time.Duration
	apiMaxTimeout  time.Duration
	metricsEnabled bool
	wsBufferSize   int
	schemas        map[string]*jsonValidator
}

type restError struct {
	Error string `json:"error"`
}

func NewAPIServer() Server {
	return &apiServer{
		apiTimeout:     config.GetDuration(config.APIRequestTimeout),
		apiMaxTimeout:  config.GetDuration(config.APIMaxRequestTimeout),
		metricsEnabled: config.GetBool(config.MetricsEnabled),
		wsBufferSize:   config.GetInt(config.APIWebSocketBufferSize),
		schemas:        make(map[string]*jsonValidator),
	}
}

// Serve is the main entry point for the API Server
func (as *apiServer) Serve(ctx context.Context, o orchestrator.Orchestrator) (err error) {
	httpErrChan := make(chan error)

	ws := wsserver.NewWebSocketServer(ctx, as.wsBufferSize)
	defer ws.Close()
	o.AddCompletionListener(completionBroadcaster(ws))

	r, err := as.createMuxRouter(ctx, o, ws)
	if err != nil {
		return err
	}
	apiHTTPServer, err := newHTTPServer(ctx, "api", r, httpErrChan)
	if err != nil {
		return err
	}
	go apiHTTPServer.serveHTTP(ctx)

	return <-httpErrChan
}

// completionBroadcaster pushes every completed dispatch to websocket clients,
// using the event type as the topic
func completionBroadcaster(ws wsserver.WebSocketServer) func(*rwtypes.DispatchResult) {
	return func(result *rwtypes.DispatchResult) {
		ws.Broadcast(string(result.Event.Type), result)
	}
}

func (as *apiServer) getParams(req *http.Request) (queryParams, pathParams map[string]string) {
	queryParams = make(map[string]string)
	pathParams = mux.Vars(req)
	if pathParams == nil {
		pathParams = make(map[string]string)
	}
	for k, v := range req.URL.Query() {
		if len(v) > 0 {
			queryParams[k] = v[0]
		}
	}
	return queryParams, pathParams
}

func (as *apiServer) readInput(ctx context.Context, req *http.Request, route *route) (interface{}, error) {
	if route.jsonInputValue == nil {
		return nil, nil
	}
	jsonInput := route.jsonInputValue()
	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgJSONDecodeFailed)
	}
	if jv := as.schemas[route.name]; jv != nil {
		if err := jv.validateBytes(ctx, b); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(b, jsonInput); err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgJSONDecodeFailed)
	}
	return jsonInput, nil
}

func (as *apiServer) routeHandler(o orchestrator.Orchestrator, route *route) http.HandlerFunc {
	return as.apiWrapper(func(res http.ResponseWriter, req *http.Request) (int, error) {
		var output interface{}
		status := 400 // if fail parsing input
		jsonInput, err := as.readInput(req.Context(), req, route)
		if err == nil {
			queryParams, pathParams := as.getParams(req)
			r := &apiRequest{
				ctx:           req.Context(),
				or:            o,
				req:           req,
				pp:            pathParams,
				qp:            queryParams,
				input:         jsonInput,
				successStatus: route.jsonOutputCode,
			}
			if r.successStatus == 0 {
				r.successStatus = http.StatusOK
			}
			output, err = route.jsonHandler(r)
			status = r.successStatus // Can be updated by the route
		}
		if err == nil {
			status, err = as.handleOutput(req.Context(), res, status, output)
		}
		return status, err
	})
}

func (as *apiServer) handleOutput(ctx context.Context, res http.ResponseWriter, status int, output interface{}) (int, error) {
	vOutput := reflect.ValueOf(output)
	outputKind := vOutput.Kind()
	isPointer := outputKind == reflect.Ptr
	invalid := outputKind == reflect.Invalid
	isNil := output == nil || invalid || (isPointer && vOutput.IsNil())
	var marshalErr error
	switch {
	case isNil:
		if status != 204 {
			return 404, i18n.NewError(ctx, i18n.Msg404NotFound)
		}
		res.WriteHeader(204)
	default:
		res.Header().Add("Content-Type", "application/json")
		res.WriteHeader(status)
		marshalErr = json.NewEncoder(res).Encode(output)
	}
	if marshalErr != nil {
		err := i18n.WrapError(ctx, marshalErr, i18n.MsgResponseMarshalError)
		log.L(ctx).Errorf("%s", err)
		return 500, err
	}
	return status, nil
}

// getTimeout applies a Request-Timeout header, in seconds or as a duration, capped at the max
func (as *apiServer) getTimeout(req *http.Request) time.Duration {
	reqTimeout := as.apiTimeout
	reqTimeoutHeader := req.Header.Get("Request-Timeout")
	if reqTimeoutHeader != "" {
		customTimeout, err := time.ParseDuration(reqTimeoutHeader)
		if err != nil {
			var secs float64
			if secs, err = strconv.ParseFloat(reqTimeoutHeader, 64); err == nil {
				customTimeout = time.Duration(secs * float64(time.Second))
			}
		}
		if err != nil || customTimeout <= 0 {
			log.L(req.Context()).Warnf("Invalid Request-Timeout header '%s'", reqTimeoutHeader)
		} else {
			reqTimeout = customTimeout
			if reqTimeout > as.apiMaxTimeout {
				reqTimeout = as.apiMaxTimeout
			}
		}
	}
	return reqTimeout
}

func (as *apiServer) apiWrapper(handler func(res http.ResponseWriter, req *http.Request) (status int, err error)) http.HandlerFunc {
	return func(res http.ResponseWriter, req *http.Request) {

		ctx, cancel := context.WithTimeout(req.Context(), as.getTimeout(req))
		httpReqID := rwtypes.ShortID()
		ctx = log.WithLogField(ctx, "httpreq", httpReqID)
		req = req.WithContext(ctx)
		defer cancel()

		// Wrap the request itself in a log wrapper, that gives minimal request/response and timing info
		l := log.L(ctx)
		l.Infof("--> %s %s", req.Method, req.URL.Path)
		startTime := time.Now()
		status, err := handler(res, req)
		durationMS := float64(time.Since(startTime)) / float64(time.Millisecond)
		if err != nil {

			// Routers don't need to tweak the status code when sending errors.
			// .. either the RW12345 error they raise is mapped to a status hint
			if statusHint, ok := i18n.StatusHintOf(err); ok {
				status = statusHint
			}

			// If the context is done, we wrap in 408
			if status != http.StatusRequestTimeout {
				select {
				case <-ctx.Done():
					l.Errorf("Request failed and context is closed. Returning %d (overriding %d): %s", http.StatusRequestTimeout, status, err)
					status = http.StatusRequestTimeout
					err = i18n.WrapError(ctx, err, i18n.MsgRequestTimeout, httpReqID, durationMS)
				default:
				}
			}

			// ... or we default to 500
			if status < 300 {
				status = 500
			}
			l.Infof("<-- %s %s [%d] (%.2fms): %s", req.Method, req.URL.Path, status, durationMS, err)
			res.Header().Add("Content-Type", "application/json")
			res.WriteHeader(status)
			_ = json.NewEncoder(res).Encode(&restError{
				Error: err.Error(),
			})
		} else {
			l.Infof("<-- %s %s [%d] (%.2fms)", req.Method, req.URL.Path, status, durationMS)
		}
	}
}

func (as *apiServer) publicURL() string {
	publicURL := config.GetString(config.HTTPPublicURL)
	if publicURL == "" {
		publicURL = fmt.Sprintf("http://%s:%d", config.GetString(config.HTTPAddress), config.GetUint(config.HTTPPort))
	}
	return strings.TrimSuffix(publicURL, "/") + "/api/v1"
}

func (as *apiServer) swaggerHandler(routes []*route, url string) func(res http.ResponseWriter, req *http.Request) (status int, err error) {
	return func(res http.ResponseWriter, req *http.Request) (status int, err error) {
		doc := swaggerGen(req.Context(), routes, &swaggerGenConfig{
			BaseURL: url,
			Title:   "rewardd",
			Version: "1.0",
		})
		vars := mux.Vars(req)
		if vars["ext"] == ".json" {
			res.Header().Add("Content-Type", "application/json")
			b, _ := json.Marshal(&doc)
			_, _ = res.Write(b)
		} else {
			res.Header().Add("Content-Type", "application/x-yaml")
			b, _ := yaml.Marshal(&doc)
			_, _ = res.Write(b)
		}
		return 200, nil
	}
}

func (as *apiServer) notFoundHandler(res http.ResponseWriter, req *http.Request) (status int, err error) {
	res.Header().Add("Content-Type", "application/json")
	return 404, i18n.NewError(req.Context(), i18n.Msg404NotFound)
}

func (as *apiServer) createMuxRouter(ctx context.Context, o orchestrator.Orchestrator, ws wsserver.WebSocketServer) (*mux.Router, error) {
	r := mux.NewRouter()
	if as.metricsEnabled {
		r.Use(metrics.GetAdminServerInstrumentation().Middleware)
	}

	for _, route := range routes {
		if route.jsonInputSchema != "" {
			jv, err := newJSONValidator(ctx, route.name, route.jsonInputSchema)
			if err != nil {
				return nil, err
			}
			as.schemas[route.name] = jv
		}
		r.HandleFunc(fmt.Sprintf("/api/v1/%s", route.path), as.routeHandler(o, route)).
			Methods(route.method)
	}

	r.HandleFunc(`/api/swagger{ext:\.yaml|\.json|}`, as.apiWrapper(as.swaggerHandler(routes, as.publicURL())))

	r.HandleFunc(`/ws`, ws.Handler())

	if as.metricsEnabled {
		r.Path("/metrics").Handler(promhttp.InstrumentMetricHandler(metrics.Registry(),
			promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
	}

	r.NotFoundHandler = as.apiWrapper(as.notFoundHandler)
	return r, nil
}
