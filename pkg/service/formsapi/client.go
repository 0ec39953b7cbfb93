package formsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/approvalforms/formsctl/pkg/domain/interfaces"
	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/utils/safe"
)

// Client talks to the forms platform's employee API. Paths mirror the
// existing backend contract under /api.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cred       Credential
}

var _ interfaces.FormsAPI = &Client{}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, cred Credential, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		cred:       cred,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues one authorized request. Transport failures become ErrNetwork;
// non-2xx statuses are classified into the error taxonomy with the server's
// message attached when it sends one.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to encode request body", goerr.V(PathKey, path))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V(PathKey, path))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.cred.Apply(req); err != nil {
		return goerr.Wrap(err, "failed to apply credential", goerr.V(PathKey, path))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(ErrNetwork, "request failed",
			goerr.V(PathKey, path), goerr.V("cause", err.Error()))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.Wrap(classify(resp.StatusCode), "request rejected",
			goerr.V(StatusKey, resp.StatusCode),
			goerr.V(PathKey, path),
			goerr.V(MessageKey, serverMessage(resp.Body)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return goerr.Wrap(err, "failed to decode response", goerr.V(PathKey, path))
		}
	}
	return nil
}

// serverMessage extracts the backend's {"message": ...} payload if present
func serverMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) FetchForm(ctx context.Context, formID types.FormID) (*model.Form, error) {
	var form model.Form
	if err := c.do(ctx, http.MethodGet, "/employee/form/"+formID.String(), nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (c *Client) FetchResponses(ctx context.Context, formID types.FormID) ([]*model.ServerResponse, error) {
	var rows []*model.ServerResponse
	if err := c.do(ctx, http.MethodGet, "/employee/form/"+formID.String()+"/responses", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) FetchActivity(ctx context.Context, formID types.FormID) ([]*model.Activity, error) {
	var activity []*model.Activity
	if err := c.do(ctx, http.MethodGet, "/employee/form/"+formID.String()+"/activity", nil, &activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (c *Client) FetchRecentActivity(ctx context.Context) ([]*model.Activity, error) {
	var activity []*model.Activity
	if err := c.do(ctx, http.MethodGet, "/employee/recent-activity", nil, &activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (c *Client) SubmitResponse(ctx context.Context, formID types.FormID, req *model.SubmitRequest) error {
	return c.do(ctx, http.MethodPost, "/employee/form/"+formID.String()+"/response", req, nil)
}

func (c *Client) DeleteResponse(ctx context.Context, formID types.FormID, req *model.DeleteResponseRequest) error {
	return c.do(ctx, http.MethodDelete, "/employee/form/"+formID.String()+"/response", req, nil)
}

func (c *Client) DeleteRecord(ctx context.Context, formID types.FormID, recordID types.RecordID) error {
	return c.do(ctx, http.MethodDelete, "/employee/form/"+formID.String()+"/record/"+string(recordID), nil, nil)
}

func (c *Client) ToggleFormStatus(ctx context.Context, formID types.FormID, active bool) (*model.Form, error) {
	var form model.Form
	if err := c.do(ctx, http.MethodPut, "/employee/form/"+formID.String()+"/status", &model.StatusRequest{IsActive: active}, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (c *Client) DeleteForm(ctx context.Context, formID types.FormID) error {
	return c.do(ctx, http.MethodDelete, "/employee/form/"+formID.String(), nil, nil)
}

func (c *Client) LogAddRecord(ctx context.Context, formID types.FormID) error {
	return c.do(ctx, http.MethodPost, "/employee/form/"+formID.String()+"/activity/add-record", struct{}{}, nil)
}
