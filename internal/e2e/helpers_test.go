package e2e

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"genrelay/internal/gemini"
	"genrelay/internal/httpapi"
	"genrelay/internal/relay"
	"genrelay/pkg/types"
)

// scriptedGen answers each call with the next scripted reply and records the
// payloads it was given.
type scriptedGen struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   []types.Modality
	inline  []*types.InlineData
}

func (g *scriptedGen) Generate(_ context.Context, m types.Modality, p types.Payload) (*types.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, m)
	for _, part := range p.Parts {
		if part.Inline != nil {
			g.inline = append(g.inline, part.Inline)
		}
	}
	if g.err != nil {
		return nil, g.err
	}
	if len(g.replies) == 0 {
		return &types.Result{}, nil
	}
	r := g.replies[0]
	g.replies = g.replies[1:]
	return &types.Result{Candidates: []*types.Candidate{{Content: &types.Content{
		Parts: []types.ResultPart{types.TextPart(r)},
	}}}}, nil
}

func (g *scriptedGen) Models() gemini.ModelSet { return gemini.DefaultModels() }

func (g *scriptedGen) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func newServer(t *testing.T, gen gemini.Generator) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(httpapi.NewMux(relay.New(gen)))
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	return do(t, req)
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return do(t, req)
}

// httpPostFile uploads data under field. An empty field sends a form with no file.
func httpPostFile(t *testing.T, url, field, filename, mimeType string, data []byte) (*http.Response, []byte) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		if mimeType != "" {
			h.Set("Content-Type", mimeType)
		}
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write part: %v", err)
		}
	} else if err := mw.WriteField("note", "no file here"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, &body)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return do(t, req)
}

func do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
