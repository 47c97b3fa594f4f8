package mcp

import (
	"context"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const (
	clientSessionKey contextKey = iota
)

// getClientSession extracts the MCP client session ID from context.
func getClientSession(ctx context.Context) string {
	v, _ := ctx.Value(clientSessionKey).(string)
	return v
}

// sessionMiddleware identifies the calling client from the Mcp-Session-Id
// header (HTTP), _meta.session_id (stdio) or the transport session.
func sessionMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var sessionID string

			extra := req.GetExtra()
			if extra != nil && extra.Header != nil {
				sessionID = extra.Header.Get("Mcp-Session-Id")
			}

			// Some notifications carry nil params, and GetMeta panics on a
			// nil underlying value.
			if sessionID == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if sid, ok := meta["session_id"].(string); ok {
								sessionID = sid
							}
						}
					}()
				}
			}

			if sessionID == "" {
				sessionID = safeSessionID(req)
			}

			ctx = context.WithValue(ctx, clientSessionKey, sessionID)
			return next(ctx, method, req)
		}
	}
}

// bindings remembers the court session each MCP client started last, so
// court tools can omit session_id.
type bindings struct {
	mu     sync.Mutex
	courts map[string]string
}

func newBindings() *bindings {
	return &bindings{courts: make(map[string]string)}
}

func (b *bindings) bind(client, courtID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.courts[client] = courtID
}

// resolve returns explicit when set, else the court bound to client.
func (b *bindings) resolve(client, explicit string) string {
	if explicit != "" {
		return explicit
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.courts[client]
}

func (b *bindings) unbind(courtID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for client, id := range b.courts {
		if id == courtID {
			delete(b.courts, client)
		}
	}
}
