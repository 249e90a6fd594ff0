package module

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/smithy-go"
	"golang.org/x/time/rate"

	"github.com/spacelift-io/flows-app-aws-api/schema"
)

func newTestAPI(t *testing.T, limiter *rate.Limiter) *httptest.Server {
	t.Helper()

	echo := newFakeBlock("fake.echo", schema.StringField("Name", "").AsRequired())
	echo.execute = func(ctx context.Context, inv *Invocation) error {
		return inv.Emitter.Emit(ctx, DefaultChannel, map[string]any{"Name": inv.InputConfig["Name"]})
	}
	denied := newFakeBlock("fake.denied")
	denied.execute = func(context.Context, *Invocation) error {
		return &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not authorized", Fault: smithy.FaultClient}
	}
	broken := newFakeBlock("fake.broken")
	broken.execute = func(context.Context, *Invocation) error {
		return errors.New("connection refused")
	}

	typed := NewOperation(fakeService, fakeDef,
		func(*fakeClient, context.Context, *fakeInput, ...func(*fakeOptions)) (*fakeOutput, error) {
			return &fakeOutput{}, nil
		})

	iv, _, _ := newTestInvoker(t, echo, denied, broken, typed)
	mux := http.NewServeMux()
	NewBlockAPI(iv, limiter).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postInvoke(t *testing.T, srv *httptest.Server, blockType, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/blocks/"+blockType+"/invoke", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, out
}

func TestBlockAPI_List(t *testing.T) {
	srv := newTestAPI(t, nil)

	resp, err := http.Get(srv.URL + "/blocks")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body struct {
		Blocks []struct {
			Type string `json:"type"`
		} `json:"blocks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Blocks) != 4 || body.Blocks[0].Type != "fake.broken" {
		t.Errorf("unexpected block list %+v", body.Blocks)
	}
}

func TestBlockAPI_Describe(t *testing.T) {
	srv := newTestAPI(t, nil)

	resp, err := http.Get(srv.URL + "/blocks/fake.echo")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var decl map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decl); err != nil {
		t.Fatalf("decode: %v", err)
	}
	inputs, _ := decl["inputs"].(map[string]any)
	def, _ := inputs["default"].(map[string]any)
	cfg, _ := def["config"].(map[string]any)
	if _, ok := cfg["Name"]; !ok {
		t.Errorf("declaration missing Name field: %v", decl)
	}

	resp2, err := http.Get(srv.URL + "/blocks/fake.nope")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("unknown block status = %d, want 404", resp2.StatusCode)
	}
}

func TestBlockAPI_Invoke(t *testing.T) {
	srv := newTestAPI(t, nil)

	tests := []struct {
		name       string
		block      string
		body       string
		wantStatus int
		check      func(t *testing.T, out map[string]any)
	}{
		{
			name:       "success",
			block:      "fake.echo",
			body:       `{"inputConfig":{"region":"us-east-1","Name":"x"}}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, out map[string]any) {
				events, _ := out["events"].([]any)
				if len(events) != 1 || out["invocationId"] == "" {
					t.Errorf("unexpected result %v", out)
				}
			},
		},
		{
			name:       "validation error",
			block:      "fake.echo",
			body:       `{"inputConfig":{"Name":"x"}}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, out map[string]any) {
				fields, _ := out["fields"].([]any)
				if len(fields) != 1 || fields[0] != "inputConfig.region" {
					t.Errorf("fields = %v", out["fields"])
				}
			},
		},
		{
			name:       "missing inputConfig",
			block:      "fake.echo",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			block:      "fake.echo",
			body:       `{"inputConfig":`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, out map[string]any) {
				if msg, _ := out["error"].(string); !strings.HasPrefix(msg, "invalid request body") {
					t.Errorf("error = %v", out["error"])
				}
			},
		},
		{
			name:       "unknown block",
			block:      "fake.nope",
			body:       `{"inputConfig":{}}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "upstream API error",
			block:      "fake.denied",
			body:       `{"inputConfig":{"region":"us-east-1"}}`,
			wantStatus: http.StatusBadGateway,
			check: func(t *testing.T, out map[string]any) {
				if out["code"] != "AccessDeniedException" {
					t.Errorf("code = %v", out["code"])
				}
				if msg, _ := out["error"].(string); !strings.Contains(msg, "not authorized") {
					t.Errorf("upstream message not passed through: %v", out["error"])
				}
			},
		},
		{
			name:       "parameter of the wrong type",
			block:      "fake.encryptThing",
			body:       `{"inputConfig":{"region":"us-east-1","KeyId":"k","Limit":"abc"}}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, out map[string]any) {
				if msg, _ := out["error"].(string); !strings.Contains(msg, "decode parameters") {
					t.Errorf("error = %v", out["error"])
				}
			},
		},
		{
			name:       "transport error",
			block:      "fake.broken",
			body:       `{"inputConfig":{"region":"us-east-1"}}`,
			wantStatus: http.StatusBadGateway,
			check: func(t *testing.T, out map[string]any) {
				if _, ok := out["code"]; ok {
					t.Errorf("no code expected for non-API errors, got %v", out["code"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := postInvoke(t, srv, tt.block, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%v)", resp.StatusCode, tt.wantStatus, out)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if tt.check != nil {
				tt.check(t, out)
			}
		})
	}
}

func TestClassifyError(t *testing.T) {
	invalid := smithy.InvalidParamsError{Context: "EncryptInput"}
	invalid.Add(smithy.NewErrParamRequired("KeyId"))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unknown block", fmt.Errorf("%w: x.y", ErrUnknownBlock), http.StatusNotFound, ""},
		{"validation errors", schema.ValidationErrors{{Path: "inputConfig.region", Message: "missing"}}, http.StatusBadRequest, ""},
		{"single validation error", &schema.ValidationError{Path: "inputConfig.KeyId", Message: "missing"}, http.StatusBadRequest, ""},
		{"undecodable parameters", &InvocationError{BlockType: "ec2.runInstances", Err: &ParameterError{Err: errors.New("cannot unmarshal string into MinCount")}}, http.StatusBadRequest, ""},
		{"sdk parameter validation", &InvocationError{BlockType: "kms.encrypt", Err: &smithy.OperationError{ServiceID: "KMS", OperationName: "Encrypt", Err: invalid}}, http.StatusBadRequest, ""},
		{"api error", &InvocationError{Err: &smithy.GenericAPIError{Code: "ThrottlingException"}}, http.StatusBadGateway, "ThrottlingException"},
		{"transport error", &InvocationError{Err: errors.New("dial tcp: timeout")}, http.StatusBadGateway, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := classifyError(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}

func TestBlockAPI_RateLimit(t *testing.T) {
	srv := newTestAPI(t, rate.NewLimiter(rate.Limit(0.001), 1))

	resp, _ := postInvoke(t, srv, "fake.echo", `{"inputConfig":{"region":"us-east-1","Name":"x"}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first request status = %d", resp.StatusCode)
	}
	resp, out := postInvoke(t, srv, "fake.echo", `{"inputConfig":{"region":"us-east-1","Name":"x"}}`)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429 (%v)", resp.StatusCode, out)
	}
}

func TestBlockAPI_Healthz(t *testing.T) {
	srv := newTestAPI(t, nil)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["status"] != "ok" || out["blocks"] != float64(3) {
		t.Errorf("healthz = %v", out)
	}
}

func TestBlockAPI_MethodNotAllowed(t *testing.T) {
	srv := newTestAPI(t, nil)
	resp, err := http.Get(srv.URL + "/blocks/fake.echo/invoke")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}
