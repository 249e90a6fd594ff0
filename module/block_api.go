package module

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/smithy-go"
	"golang.org/x/time/rate"

	"github.com/spacelift-io/flows-app-aws-api/schema"
)

// maxInvokeBody bounds the size of an invoke request body.
const maxInvokeBody = 1 << 20

type invokeRequest struct {
	InputConfig map[string]any `json:"inputConfig"`
}

type errorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// BlockAPI serves block declarations and invocations over HTTP.
type BlockAPI struct {
	invoker *Invoker
	limiter *rate.Limiter
}

// NewBlockAPI creates the HTTP API. A nil limiter disables rate limiting.
func NewBlockAPI(invoker *Invoker, limiter *rate.Limiter) *BlockAPI {
	return &BlockAPI{invoker: invoker, limiter: limiter}
}

// RegisterRoutes mounts the API on mux.
func (a *BlockAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /blocks", a.handleList)
	mux.HandleFunc("GET /blocks/{type}", a.handleDescribe)
	mux.HandleFunc("POST /blocks/{type}/invoke", a.handleInvoke)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "blocks": a.invoker.Registry().Len()})
	})
}

func (a *BlockAPI) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"blocks": a.invoker.Registry().Declarations()})
}

func (a *BlockAPI) handleDescribe(w http.ResponseWriter, r *http.Request) {
	block, err := a.invoker.Registry().Get(r.PathValue("type"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, block.Schema().Declaration())
}

func (a *BlockAPI) handleInvoke(w http.ResponseWriter, r *http.Request) {
	if a.limiter != nil && !a.limiter.Allow() {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
		return
	}

	var req invokeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInvokeBody))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if req.InputConfig == nil {
		req.InputConfig = map[string]any{}
	}

	result, err := a.invoker.Invoke(r.Context(), r.PathValue("type"), req.InputConfig)
	if err != nil {
		status, body := classifyError(err)
		writeJSON(w, status, body)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// classifyError maps an invocation error to an HTTP status. Upstream errors
// are passed through verbatim; only the status code is chosen here.
func classifyError(err error) (int, errorResponse) {
	if errors.Is(err, ErrUnknownBlock) {
		return http.StatusNotFound, errorResponse{Error: err.Error()}
	}

	if IsValidationError(err) {
		var fields []string
		var ves schema.ValidationErrors
		var ve *schema.ValidationError
		switch {
		case errors.As(err, &ves):
			for _, v := range ves {
				fields = append(fields, v.Path)
			}
		case errors.As(err, &ve):
			fields = []string{ve.Path}
		}
		return http.StatusBadRequest, errorResponse{Error: err.Error(), Fields: fields}
	}

	// Parameters that do not fit the SDK input, or that the SDK's own
	// validators reject, never left the host.
	var pe *ParameterError
	var ipe smithy.InvalidParamsError
	if errors.As(err, &pe) || errors.As(err, &ipe) {
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway, errorResponse{Error: err.Error(), Code: apiErr.ErrorCode()}
	}

	return http.StatusBadGateway, errorResponse{Error: err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
