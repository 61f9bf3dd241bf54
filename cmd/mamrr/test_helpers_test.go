package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

const (
	testUser     = "alice"
	testPassword = "secret"
	testInvite   = "open-sesame"
)

type cliTestEnv struct {
	backend    *fakeBackend
	configPath string
	stateDir   string
}

// fakeBackend stands in for the index webapp. It hands out a real-shaped
// bearer token and enforces it on the authenticated routes.
type fakeBackend struct {
	server *httptest.Server
	token  string

	mu            sync.Mutex
	searchPayload string
	addedIDs      []int64
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	fb := &fakeBackend{
		token:         testToken(testUser, time.Now().Add(time.Hour)),
		searchPayload: `[]`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if r.PostFormValue("username") != testUser || r.PostFormValue("password") != testPassword {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid username or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": fb.token})
	})
	mux.HandleFunc("POST /api/register", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username   string `json:"username"`
			Password   string `json:"password"`
			InviteCode string `json:"invite_code"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if body.InviteCode != testInvite {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid invite code"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": testToken(body.Username, time.Now().Add(time.Hour))})
	})
	mux.HandleFunc("GET /api/me", func(w http.ResponseWriter, r *http.Request) {
		if !fb.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"username": testUser, "created_at": "2026-01-01T00:00:00Z"})
	})
	mux.HandleFunc("GET /api/search", func(w http.ResponseWriter, r *http.Request) {
		if !fb.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		fb.mu.Lock()
		payload := fb.searchPayload
		fb.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, payload)
	})
	mux.HandleFunc("POST /api/add", func(w http.ResponseWriter, r *http.Request) {
		if !fb.authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		var body struct {
			TID int64 `json:"tid"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		fb.mu.Lock()
		fb.addedIDs = append(fb.addedIDs, body.TID)
		fb.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"status": "queued"})
	})
	mux.HandleFunc("GET /api/test", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	fb.server = httptest.NewServer(mux)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+fb.token
}

func (fb *fakeBackend) setSearchPayload(payload string) {
	fb.mu.Lock()
	fb.searchPayload = payload
	fb.mu.Unlock()
}

func (fb *fakeBackend) added() []int64 {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]int64(nil), fb.addedIDs...)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func testToken(subject string, expires time.Time) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"sub":%q,"exp":%d}`, subject, expires.Unix())))
	return header + "." + payload + ".signature"
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	backend := newFakeBackend(t)

	base := t.TempDir()
	stateDir := filepath.Join(base, "state")
	logDir := filepath.Join(base, "logs")

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[server]
url = %q
request_timeout = 5
verify_session = true

[paths]
state_dir = %q
log_dir = %q

[logging]
format = "json"
level = "warn"
`, backend.server.URL, stateDir, logDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		backend:    backend,
		configPath: configPath,
		stateDir:   stateDir,
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func login(t *testing.T, env *cliTestEnv) {
	t.Helper()
	if _, _, err := runCLI(t, env, "login", testUser, "--password", testPassword); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
