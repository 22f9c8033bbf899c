package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/web-inv/sitebuilder/internal/builder"
	"github.com/web-inv/sitebuilder/internal/content"
	"github.com/web-inv/sitebuilder/internal/preview"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveRequest is a builder command sent over the websocket.
type liveRequest struct {
	Type    string         `json:"type"`
	ID      string         `json:"id,omitempty"`
	Over    string         `json:"over,omitempty"`
	Kind    content.Kind   `json:"kind,omitempty"`
	Name    string         `json:"name,omitempty"`
	From    int            `json:"from,omitempty"`
	To      int            `json:"to,omitempty"`
	Content content.Fields `json:"content,omitempty"`
	Editing string         `json:"editing,omitempty"`
}

// liveResponse is either a document snapshot with its rendered canvas or
// an error.
type liveResponse struct {
	Type    string           `json:"type"`
	Builder *builderResponse `json:"builder,omitempty"`
	Canvas  string           `json:"canvas,omitempty"`
	Message string           `json:"message,omitempty"`
}

// handleLive streams the builder of the requesting browser. Every change,
// whichever connection or request made it, produces a fresh snapshot.
func (a *API) handleLive(w http.ResponseWriter, r *http.Request) {
	st := a.state(w, r)

	// The upgrade writes its own response, so a freshly issued session
	// cookie has to be passed along.
	header := http.Header{}
	for _, c := range w.Header().Values("Set-Cookie") {
		header.Add("Set-Cookie", c)
	}

	conn, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		log.Printf("api: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	// One writer goroutine owns the connection. Snapshots coalesce: a
	// burst of changes sends only the latest state.
	changed := make(chan struct{}, 1)
	errs := make(chan string, 8)
	editing := make(chan string, 1)
	done := make(chan struct{})

	signal := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
	unsubscribe := st.Subscribe(func([]content.Section) { signal() })
	defer unsubscribe()

	go func() {
		editingID := ""
		for {
			select {
			case <-done:
				return
			case id := <-editing:
				editingID = id
			case msg := <-errs:
				if err := conn.WriteJSON(liveResponse{Type: "error", Message: msg}); err != nil {
					log.Printf("api: websocket write error: %v", err)
					return
				}
				continue
			case <-changed:
			}
			if err := conn.WriteJSON(a.liveSnapshot(st, editingID)); err != nil {
				log.Printf("api: websocket write: %v", err)
				return
			}
		}
	}()
	defer close(done)

	signal()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("api: websocket read: %v", err)
			}
			return
		}

		var req liveRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			sendErr(errs, "invalid message format")
			continue
		}

		switch req.Type {
		case "add":
			if req.Kind == "" {
				sendErr(errs, "kind is required")
				continue
			}
			st.AddSection(req.Kind)
		case "remove":
			st.RemoveSection(req.ID)
		case "select":
			st.Select(req.ID)
			signal()
		case "reorder":
			st.Reorder(req.From, req.To)
		case "move":
			st.MoveSection(req.ID, req.Over)
		case "edit":
			st.EditContent(req.ID, req.Content)
		case "rename":
			st.Rename(req.ID, req.Name)
		case "editing":
			// Only the canvas changes, so the writer is told directly.
			select {
			case <-editing:
			default:
			}
			editing <- req.Editing
		case "refresh":
			signal()
		default:
			sendErr(errs, "unknown message type: "+req.Type)
		}
	}
}

func sendErr(errs chan<- string, msg string) {
	select {
	case errs <- msg:
	default:
	}
}

func (a *API) liveSnapshot(st *builder.State, editingID string) liveResponse {
	snap := a.snapshot(st)
	resp := liveResponse{Type: "document", Builder: &snap}

	var buf bytes.Buffer
	err := preview.Render(&buf, snap.Document.Sections, snap.Document.Style(), preview.Options{
		SelectedID: snap.Selected,
		EditingID:  editingID,
		Editable:   true,
	})
	if err != nil {
		return liveResponse{Type: "error", Message: err.Error()}
	}
	resp.Canvas = buf.String()
	return resp
}
