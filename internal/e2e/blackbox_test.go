package e2e

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"genrelay/pkg/types"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file: <root>/internal/e2e/blackbox_test.go
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

func buildBinary(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "genrelay")
	cmd := exec.Command("go", "build", "-o", bin, "./cmd/genrelay")
	cmd.Dir = projectRoot(t)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return bin
}

// startBinary runs the relay without credentials so no request leaves the host.
func startBinary(t *testing.T, bin string, port int, extraEnv ...string) string {
	t.Helper()
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	cmd := exec.Command(bin, "--addr", fmt.Sprintf("127.0.0.1:%d", port), "--env-file=", "--log-level", "error")
	cmd.Env = append([]string{"PATH=" + os.Getenv("PATH"), "HOME=" + t.TempDir()}, extraEnv...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() { _ = cmd.Process.Kill(); _ = cmd.Wait() })

	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return base
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func TestBlackbox_Flow(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	bin := buildBinary(t)
	base := startBinary(t, bin, findFreePort(t), "GENRELAY_MODEL_IMAGE=vision-test")

	// /models reflects env configuration
	resp, body := httpGet(t, base+"/models")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/models %d %s", resp.StatusCode, string(body))
	}
	var m types.ModelsResponse
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("/models json: %v body=%s", err, string(body))
	}
	if m.Models[types.ModalityImage] != "vision-test" || m.Models[types.ModalityText] == "" {
		t.Fatalf("models=%v", m.Models)
	}

	// Validation happens before any provider call.
	resp, body = httpPostJSON(t, base+"/generate-text", []byte(`{}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("/generate-text invalid %d %s", resp.StatusCode, string(body))
	}
	resp, body = httpPostFile(t, base+"/generate-pdf", "", "", "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("/generate-pdf missing file %d %s", resp.StatusCode, string(body))
	}

	// Without an API key the first inference call fails with a 500.
	resp, body = httpPostJSON(t, base+"/generate-text", []byte(`{"message":"hello"}`))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("/generate-text %d %s", resp.StatusCode, string(body))
	}
	var e types.ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil {
		t.Fatalf("error json: %v body=%s", err, string(body))
	}
	if e.Message != "An error occurred" || !strings.Contains(e.Error, "missing API key") {
		t.Fatalf("body=%+v", e)
	}

	resp, body = httpGet(t, base+"/metrics")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "genrelay_inference_calls_total") {
		t.Fatalf("/metrics %d", resp.StatusCode)
	}
}
