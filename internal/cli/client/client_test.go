package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/investmateai/imctl/internal/cli/types"
)

// staticToken is a TokenSource with a fixed token
type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, creds TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, creds)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, srv
}

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "full url", in: "http://localhost:8000", want: "http://localhost:8000"},
		{name: "https url", in: "https://api.investmate.ai", want: "https://api.investmate.ai"},
		{name: "bare host gets scheme", in: "localhost:8000", want: "http://localhost:8000"},
		{name: "trailing path stripped", in: "http://localhost:8000/api/", want: "http://localhost:8000"},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeServerURL(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("normalizeServerURL(%q) error = nil, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeServerURL(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("normalizeServerURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoginFormEncoded(t *testing.T) {
	var gotContentType, gotUser, gotPass string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		gotUser = r.PostFormValue("username")
		gotPass = r.PostFormValue("password")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.Credential{AccessToken: "tok-abc", TokenType: "bearer"})
	})

	c, _ := newTestClient(t, handler, nil)
	cred, err := c.Login(context.Background(), "dana@agency.co.il", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q, want form encoding", gotContentType)
	}
	if gotUser != "dana@agency.co.il" || gotPass != "s3cret" {
		t.Errorf("form = (%q, %q), want email under username key", gotUser, gotPass)
	}
	if cred.AccessToken != "tok-abc" || cred.TokenType != "bearer" {
		t.Errorf("credential = %+v, want tok-abc/bearer", cred)
	}
}

func TestBearerAttachment(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	})

	t.Run("credential present", func(t *testing.T) {
		c, _ := newTestClient(t, handler, staticToken("tok-xyz"))
		if _, err := c.ListProperties(context.Background()); err != nil {
			t.Fatalf("ListProperties() error = %v", err)
		}
		if gotAuth != "Bearer tok-xyz" {
			t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-xyz")
		}
	})

	t.Run("anonymous session", func(t *testing.T) {
		c, _ := newTestClient(t, handler, staticToken(""))
		if _, err := c.ListProperties(context.Background()); err != nil {
			t.Fatalf("ListProperties() error = %v", err)
		}
		if gotAuth != "" {
			t.Errorf("Authorization = %q, want absent for anonymous session", gotAuth)
		}
	})

	t.Run("nil token source", func(t *testing.T) {
		c, _ := newTestClient(t, handler, nil)
		if _, err := c.ListProperties(context.Background()); err != nil {
			t.Fatalf("ListProperties() error = %v", err)
		}
		if gotAuth != "" {
			t.Errorf("Authorization = %q, want absent with nil token source", gotAuth)
		}
	})
}

func TestAPIErrorNormalization(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDiag   string
		wantUnauth bool
	}{
		{
			name:     "bad request with detail",
			status:   http.StatusBadRequest,
			body:     `{"detail":"price must be positive"}`,
			wantDiag: `{"detail":"price must be positive"}`,
		},
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       "invalid token\n",
			wantDiag:   "invalid token",
			wantUnauth: true,
		},
		{
			name:     "server error empty body",
			status:   http.StatusInternalServerError,
			body:     "",
			wantDiag: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			c, _ := newTestClient(t, handler, nil)

			_, err := c.ListAgents(context.Background())
			if err == nil {
				t.Fatal("expected error for non-2xx response")
			}

			apiErr, ok := AsAPIError(err)
			if !ok {
				t.Fatalf("error %v is not an APIError", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Diagnostic != tt.wantDiag {
				t.Errorf("Diagnostic = %q, want %q", apiErr.Diagnostic, tt.wantDiag)
			}
			if IsUnauthorized(err) != tt.wantUnauth {
				t.Errorf("IsUnauthorized() = %v, want %v", IsUnauthorized(err), tt.wantUnauth)
			}
		})
	}
}

func TestChat(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/gpt/chat/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}

		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Question != "apartments in Netanya" || req.AgentID != "agent-1" {
			t.Errorf("request = %+v, want question and agent_id", req)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.ChatResponse{
			Message: "Found 1 listing",
			Results: []types.Property{{ID: "p1", Address: "12 Herzl St", City: "Netanya", Price: 1850000}},
		})
	})

	c, _ := newTestClient(t, handler, nil)
	resp, err := c.Chat(context.Background(), "apartments in Netanya", "agent-1")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if resp.Message != "Found 1 listing" {
		t.Errorf("Message = %q, want %q", resp.Message, "Found 1 listing")
	}
	if len(resp.Results) != 1 || resp.Results[0].City != "Netanya" {
		t.Errorf("Results = %+v, want one Netanya property", resp.Results)
	}
}

func TestCreateProperty(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/properties/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var req types.CreatePropertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Address != "12 Herzl St" || req.PropertyType != "apartment" {
			t.Errorf("request = %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.Property{
			ID: "p-new", Address: req.Address, City: req.City, Price: req.Price,
		})
	})

	c, _ := newTestClient(t, handler, staticToken("tok"))
	prop, err := c.CreateProperty(context.Background(), &types.CreatePropertyRequest{
		Address: "12 Herzl St", City: "Netanya", Price: 1850000, Rooms: 3.5, PropertyType: "apartment",
	})
	if err != nil {
		t.Fatalf("CreateProperty() error = %v", err)
	}
	if prop.ID != "p-new" {
		t.Errorf("ID = %q, want p-new", prop.ID)
	}
}

func TestUploadPropertyImage(t *testing.T) {
	content := []byte("fake-jpeg-bytes")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/properties/p1/upload-image" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile() error = %v", err)
		}
		defer file.Close()

		if header.Filename != "apartment.jpg" {
			t.Errorf("filename = %q, want apartment.jpg", header.Filename)
		}
		buf := make([]byte, len(content)+1)
		n, _ := file.Read(buf)
		if string(buf[:n]) != string(content) {
			t.Errorf("file content = %q, want %q", buf[:n], content)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.ImageRef{ImageURL: "https://cdn.example/p1.jpg"})
	})

	c, _ := newTestClient(t, handler, staticToken("tok"))
	ref, err := c.UploadPropertyImage(context.Background(), "p1", "apartment.jpg", content)
	if err != nil {
		t.Fatalf("UploadPropertyImage() error = %v", err)
	}
	if ref.ImageURL != "https://cdn.example/p1.jpg" {
		t.Errorf("ImageURL = %q", ref.ImageURL)
	}
}

func TestGetChatInsights(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/dashboard/insights" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"top_questions": [{"question": "yield?", "count": 12}],
			"peak_hours": [{"hour": 20, "count": 34}],
			"popular_properties": [{"property_id": "p1", "address": "12 Herzl St", "count": 9}],
			"gpt_recommendations": ["Post more Netanya listings"]
		}`))
	})

	c, _ := newTestClient(t, handler, staticToken("tok"))
	insights, err := c.GetChatInsights(context.Background())
	if err != nil {
		t.Fatalf("GetChatInsights() error = %v", err)
	}
	if len(insights.TopQuestions) != 1 || insights.TopQuestions[0].Count != 12 {
		t.Errorf("TopQuestions = %+v", insights.TopQuestions)
	}
	if len(insights.GPTRecommendations) != 1 {
		t.Errorf("GPTRecommendations = %+v", insights.GPTRecommendations)
	}
}
