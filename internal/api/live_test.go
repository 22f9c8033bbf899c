package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialLive(t *testing.T, srv *httptest.Server, session string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	if session != "" {
		header.Set("Cookie", SessionCookie+"="+session)
	}
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/builder"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until ok accepts one.
func readUntil(t *testing.T, conn *websocket.Conn, ok func(liveResponse) bool) liveResponse {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var resp liveResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("read: %v", err)
		}
		if ok(resp) {
			return resp
		}
	}
}

func sections(n int) func(liveResponse) bool {
	return func(r liveResponse) bool {
		return r.Type == "document" && len(r.Builder.Document.Sections) == n
	}
}

func TestLiveSnapshots(t *testing.T) {
	f := setup(t, Options{})
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	conn := dialLive(t, srv, "browser-1")
	first := readUntil(t, conn, sections(5))
	if !strings.Contains(first.Canvas, `data-section-id="1"`) {
		t.Error("initial canvas missing sections")
	}

	if err := conn.WriteJSON(liveRequest{Type: "add", Kind: "footer"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	snap := readUntil(t, conn, sections(6))
	if snap.Builder.Selected == "" {
		t.Error("added section not selected")
	}

	// A change made over HTTP by the same browser is pushed too.
	c := f.client(t)
	c.cookies[SessionCookie] = &http.Cookie{Name: SessionCookie, Value: "browser-1"}
	c.do("DELETE", "/api/builder/sections/1", nil)
	snap = readUntil(t, conn, sections(5))
	if strings.Contains(snap.Canvas, `data-section-id="1"`) {
		t.Error("removed section still on canvas")
	}
}

func TestLiveEditingForm(t *testing.T) {
	f := setup(t, Options{})
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	conn := dialLive(t, srv, "browser-2")
	readUntil(t, conn, sections(5))

	conn.WriteJSON(liveRequest{Type: "editing", Editing: "2"})
	readUntil(t, conn, func(r liveResponse) bool {
		return r.Type == "document" && strings.Contains(r.Canvas, `<form class="pv-editor" data-section-id="2">`)
	})
}

func TestLiveErrors(t *testing.T) {
	f := setup(t, Options{})
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	conn := dialLive(t, srv, "browser-3")
	readUntil(t, conn, sections(5))

	conn.WriteMessage(websocket.TextMessage, []byte("not json"))
	resp := readUntil(t, conn, func(r liveResponse) bool { return r.Type == "error" })
	if resp.Message != "invalid message format" {
		t.Errorf("message = %q", resp.Message)
	}

	conn.WriteJSON(liveRequest{Type: "explode"})
	resp = readUntil(t, conn, func(r liveResponse) bool { return r.Type == "error" })
	if !strings.Contains(resp.Message, "unknown message type") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestLiveRequiresSignIn(t *testing.T) {
	f := setup(t, Options{RequireSignIn: true})
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/builder"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", resp)
	}
}

func TestLiveIssuesSessionCookie(t *testing.T) {
	f := setup(t, Options{})
	srv := httptest.NewServer(f.router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/builder"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	var session string
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			session = c.Value
		}
	}
	if session == "" {
		t.Fatalf("upgrade response carried no %s cookie: %v", SessionCookie, resp.Header)
	}
	readUntil(t, conn, sections(5))

	// The cookie reaches the same builder the socket streams.
	c := f.client(t)
	c.cookies[SessionCookie] = &http.Cookie{Name: SessionCookie, Value: session}
	c.do("DELETE", "/api/builder/sections/1", nil)
	readUntil(t, conn, sections(4))
}
