package http

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fielddesk/fielddesk-agent/internal/app/agent"
)

func TestWebsocketConversation(t *testing.T) {
	srv := newTestServer(
		`{"intent": "invoice", "operation": "create", "confidence": 0.95}`,
		`{"customer_name": "Acme"}`,
	)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/agent/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	require.NoError(t, wsjson.Write(ctx, conn, map[string]string{
		"user_id": "u1",
		"prompt":  "create an invoice for Acme",
	}))

	var resp agent.Response
	require.NoError(t, wsjson.Read(ctx, conn, &resp))
	assert.Equal(t, agent.ResponseQuestion, resp.Type)
	assert.NotEmpty(t, resp.MissingFields)

	// user id sticks for the connection
	require.NoError(t, wsjson.Write(ctx, conn, map[string]string{
		"prompt": "hello",
	}))
	require.NoError(t, wsjson.Read(ctx, conn, &resp))
	assert.Equal(t, agent.ResponseCasual, resp.Type)
}

func TestWebsocketRequiresUserID(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/agent/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	require.NoError(t, wsjson.Write(ctx, conn, map[string]string{"prompt": "hello"}))

	var errResp map[string]string
	require.NoError(t, wsjson.Read(ctx, conn, &errResp))
	assert.Contains(t, errResp["error"], "user_id")
}
