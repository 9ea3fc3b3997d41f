package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/fansqz/cdp-snapshot-adapter/adapter"
	e "github.com/fansqz/cdp-snapshot-adapter/error"
	"github.com/fansqz/cdp-snapshot-adapter/protocol"
	"github.com/fansqz/cdp-snapshot-adapter/snapshot"
	"github.com/fansqz/cdp-snapshot-adapter/utils/gosync"
)

// Server 对外的两个websocket通道和一个HTTP发现端点
// 部署模型是单交互用户：同一时刻只服务一个CDP前端连接
type Server struct {
	config  *Config
	adapter *adapter.Adapter
	service snapshot.Service
	watcher *snapshot.Watcher
	// 启动时扫描出的虚拟脚本列表，新连接建立后逐条回放
	scripts []*protocol.ScriptParsedEventBody

	upgrader websocket.Upgrader

	mutex     sync.Mutex
	session   *cdpSession
	extension *websocket.Conn
	// 两个后台泵可能同时往扩展面板写
	extensionWriteMutex sync.Mutex
}

// cdpSession 一个CDP前端连接
type cdpSession struct {
	conn *websocket.Conn
	// gorilla的连接不允许并发写，事件和响应共用一把写锁
	writeMutex sync.Mutex
}

func (s *cdpSession) send(message interface{}) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	return s.conn.WriteJSON(message)
}

func NewServer(config *Config, a *adapter.Adapter, service snapshot.Service, watcher *snapshot.Watcher, scripts []*protocol.ScriptParsedEventBody) *Server {
	return &Server{
		config:   config,
		adapter:  a,
		service:  service,
		watcher:  watcher,
		scripts:  scripts,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Run 启动HTTP服务，ctx取消后优雅退出
func (s *Server) Run(ctx context.Context) error {
	router := chi.NewRouter()
	router.Get("/json", s.handleDiscovery)
	router.Get("/json/list", s.handleDiscovery)
	router.Get("/cdp", s.handleCDP)
	router.Get("/extension", s.handleExtension)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	// 后台任务：消费适配器通知和轮询结果
	gosync.Go(ctx, s.pumpNotifications)
	gosync.Go(ctx, s.pumpWatcher)

	server := &http.Server{Addr: s.config.ListenAddr, Handler: router}
	gosync.Go(ctx, func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	})
	logrus.Infof("[Server] listening at %s", s.config.ListenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleDiscovery /json静态描述，浏览器前端靠它发现websocket地址
func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	wsURL := fmt.Sprintf("ws://%s/cdp", s.config.ListenAddr)
	descriptor := []map[string]string{
		{
			"description":          "snapshot debuggee " + s.config.DebuggeeID,
			"devtoolsFrontendUrl":  fmt.Sprintf("devtools://devtools/bundled/js_app.html?ws=%s/cdp", s.config.ListenAddr),
			"id":                   s.config.DebuggeeID,
			"title":                "cdp-snapshot-adapter",
			"type":                 "node",
			"url":                  "file://" + s.config.SourceRoot,
			"webSocketDebuggerUrl": wsURL,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(descriptor)
}

// handleCDP CDP前端的websocket连接
func (s *Server) handleCDP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// 握手失败对这个连接是致命的
		logrus.Errorf("[Server] cdp upgrade fail, err = %v", err)
		return
	}
	session := &cdpSession{conn: conn}
	s.mutex.Lock()
	s.session = session
	s.mutex.Unlock()
	logrus.Infof("[Server] cdp client connected from %s", conn.RemoteAddr())

	// 回放虚拟脚本列表
	for _, script := range s.scripts {
		if err = session.send(&protocol.Event{Method: "Debugger.scriptParsed", Params: script}); err != nil {
			logrus.Errorf("[Server] replay scriptParsed fail, err = %v", err)
			break
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logrus.Infof("[Server] cdp client disconnected: %v", err)
			break
		}
		request := &protocol.Request{}
		if err = json.Unmarshal(data, request); err != nil {
			logrus.Warnf("[Server] parse request error, err = %v", err)
			continue
		}
		// 请求之间相互独立处理，响应靠id关联，不保证完成顺序
		gosync.Go(r.Context(), func(ctx context.Context) {
			s.handleRequest(ctx, session, request)
		})
	}

	s.mutex.Lock()
	if s.session == session {
		s.session = nil
	}
	s.mutex.Unlock()
	_ = conn.Close()
}

// handleRequest 分发一个请求并写回响应
// 处理失败时回结构化的error体，保住请求/响应的对应关系
func (s *Server) handleRequest(ctx context.Context, session *cdpSession, request *protocol.Request) {
	result, err := s.adapter.Dispatch(ctx, request)
	response := &protocol.Response{ID: request.ID}
	if err != nil {
		logrus.Warnf("[Server] request %d (%s) fail, err = %v", request.ID, request.Method, err)
		response.Error = &protocol.ResponseError{
			Code:    errorCode(err),
			Message: err.Error(),
		}
	} else {
		response.Result = result
	}
	if err = session.send(response); err != nil {
		logrus.Errorf("[Server] send response fail, err = %v", err)
	}
}

// errorCode 失败类别到错误码
func errorCode(err error) int {
	switch {
	case errors.Is(err, e.ErrNotSupportedOnSnapshot), errors.Is(err, e.ErrMethodNotRecognized):
		return protocol.ErrorCodeNotSupported
	case errors.Is(err, e.ErrInvalidParams), errors.Is(err, e.ErrInvalidLineNumber):
		return protocol.ErrorCodeInvalidParams
	case errors.Is(err, e.ErrObjectNotFound), errors.Is(err, e.ErrBreakpointNotFound):
		return protocol.ErrorCodeNotFound
	case e.IsDataShapeError(err):
		return protocol.ErrorCodeDataShape
	default:
		return protocol.ErrorCodeInternal
	}
}

// sendEvent 给当前CDP连接推一个事件，没有连接就丢弃
func (s *Server) sendEvent(method string, params interface{}) {
	s.mutex.Lock()
	session := s.session
	s.mutex.Unlock()
	if session == nil {
		return
	}
	if err := session.send(&protocol.Event{Method: method, Params: params}); err != nil {
		logrus.Errorf("[Server] send event %s fail, err = %v", method, err)
	}
}

// pumpNotifications 消费适配器的内部通知
func (s *Server) pumpNotifications(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case notification := <-s.adapter.Notifications():
			switch notification.Type {
			case adapter.NotificationResumed:
				s.sendEvent("Debugger.resumed", nil)
			case adapter.NotificationBreakpointListChanged:
				s.refreshBreakpointLists(ctx)
			}
		}
	}
}

// pumpWatcher 消费长轮询的结果
// 新完成捕获的快照翻译成Debugger.paused推给前端，列表变化刷新扩展面板
func (s *Server) pumpWatcher(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case breakpoint, ok := <-s.watcher.Hits():
			if !ok {
				return
			}
			s.loadSnapshot(ctx, breakpoint)
		case breakpoints, ok := <-s.watcher.Changes():
			if !ok {
				return
			}
			s.broadcastBreakpointLists(splitBreakpointInfoLists(breakpoints))
		}
	}
}

// loadSnapshot 翻译快照并推送paused事件
// 数据形状错误只影响这一个快照，不影响适配器和其他请求
func (s *Server) loadSnapshot(ctx context.Context, breakpoint *snapshot.Breakpoint) {
	paused, err := s.adapter.TranslateSnapshot(breakpoint)
	if err != nil {
		logrus.Errorf("[Server] translate snapshot %s fail, err = %v", breakpoint.ID, err)
		return
	}
	s.sendEvent("Debugger.paused", paused)
	s.refreshBreakpointLists(ctx)
}

// refreshBreakpointLists 重新拉取断点列表并刷新扩展面板
func (s *Server) refreshBreakpointLists(ctx context.Context) {
	breakpoints, err := s.service.ListBreakpoints(ctx)
	if err != nil {
		logrus.Errorf("[Server] list breakpoints fail, err = %v", err)
		return
	}
	s.broadcastBreakpointLists(splitBreakpointInfoLists(breakpoints))
}
