package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	e "github.com/fansqz/cdp-snapshot-adapter/error"
)

// Client 基于HTTP的快照服务客户端，实现Service接口
type Client struct {
	baseURL    string
	debuggeeID string
	debuggerID string
	httpClient *http.Client
}

// NewClient 创建快照服务客户端
// baseURL是服务地址，debuggeeID标识被调试的进程快照来源
func NewClient(baseURL string, debuggeeID string) *Client {
	return &Client{
		baseURL:    baseURL,
		debuggeeID: debuggeeID,
		debuggerID: fmt.Sprintf("cdp-adapter-%s", debuggeeID),
		// 长轮询接口服务端最多挂起90秒
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *Client) GetDebuggerID() string {
	return c.debuggerID
}

func (c *Client) CreateBreakpoint(ctx context.Context, breakpoint *Breakpoint) (*Breakpoint, error) {
	logrus.Infof("[Client] CreateBreakpoint %s:%d", breakpoint.Location.Path, breakpoint.Location.Line)
	answer := &Breakpoint{}
	path := fmt.Sprintf("/v2/controller/debuggees/%s/breakpoints/set", url.PathEscape(c.debuggeeID))
	if err := c.do(ctx, http.MethodPost, path, breakpoint, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (c *Client) DeleteBreakpoint(ctx context.Context, id string) error {
	logrus.Infof("[Client] DeleteBreakpoint %s", id)
	path := fmt.Sprintf("/v2/controller/debuggees/%s/breakpoints/%s", url.PathEscape(c.debuggeeID), url.PathEscape(id))
	err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if isStatusError(err, http.StatusNotFound) {
		return e.ErrBreakpointNotFound
	}
	return err
}

func (c *Client) GetBreakpoint(ctx context.Context, id string) (*Breakpoint, error) {
	logrus.Infof("[Client] GetBreakpoint %s", id)
	answer := &Breakpoint{}
	path := fmt.Sprintf("/v2/controller/debuggees/%s/breakpoints/%s", url.PathEscape(c.debuggeeID), url.PathEscape(id))
	if err := c.do(ctx, http.MethodGet, path, nil, answer); err != nil {
		if isStatusError(err, http.StatusNotFound) {
			return nil, e.ErrBreakpointNotFound
		}
		return nil, err
	}
	return answer, nil
}

func (c *Client) ListBreakpoints(ctx context.Context) ([]*Breakpoint, error) {
	answer := &breakpointListBody{}
	path := fmt.Sprintf("/v2/controller/debuggees/%s/breakpoints", url.PathEscape(c.debuggeeID))
	if err := c.do(ctx, http.MethodGet, path, nil, answer); err != nil {
		return nil, err
	}
	return answer.Breakpoints, nil
}

func (c *Client) WaitForUpdates(ctx context.Context) ([]*Breakpoint, error) {
	answer := &breakpointListBody{}
	path := fmt.Sprintf("/v2/controller/debuggees/%s/breakpoints?waitToken=latest", url.PathEscape(c.debuggeeID))
	if err := c.do(ctx, http.MethodGet, path, nil, answer); err != nil {
		return nil, err
	}
	return answer.Breakpoints, nil
}

type breakpointListBody struct {
	Breakpoints []*Breakpoint `json:"breakpoints"`
}

// statusError 非2xx响应
type statusError struct {
	code int
	body string
}

func (s *statusError) Error() string {
	return fmt.Sprintf("snapshot service returned %d: %s", s.code, s.body)
}

func isStatusError(err error, code int) bool {
	se, ok := err.(*statusError)
	return ok && se.code == code
}

// do 发送一次请求，body和answer都可以为nil
func (c *Client) do(ctx context.Context, method string, path string, body interface{}, answer interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &statusError{code: response.StatusCode, body: string(data)}
	}
	if answer != nil {
		return json.Unmarshal(data, answer)
	}
	return nil
}
