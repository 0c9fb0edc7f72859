package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tripmoa/tripledger/internal/auth"
	"github.com/tripmoa/tripledger/internal/ledger"
	"github.com/tripmoa/tripledger/internal/models"
	"github.com/tripmoa/tripledger/internal/service"
	"github.com/tripmoa/tripledger/internal/storage/memory"
)

var testRoster = models.Roster{"ME", "J", "K", "M"}

// fakeUserStore keeps users in a map, enough for auth round trips.
type fakeUserStore struct {
	byEmail map[string]*models.User
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return fmt.Errorf("email taken")
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := ledger.NewStore(testRoster, memory.New())
	if err := store.LoadInitial(context.Background()); err != nil {
		t.Fatalf("LoadInitial failed: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(&fakeUserStore{byEmail: map[string]*models.User{}})

	srv := New(
		service.NewLedgerService(store, 500000),
		service.NewAuthService(authenticator, jwtManager),
		jwtManager,
	)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func registerUser(t *testing.T, ts *httptest.Server) string {
	t.Helper()

	body := `{"email":"me@trip.example","displayName":"Trip Admin","password":"longenough"}`
	resp, err := http.Post(ts.URL+"/api/v1/auth/register", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if out.Token == "" {
		t.Fatal("register returned empty token")
	}
	return out.Token
}

func doJSON(t *testing.T, method, url, token string, body string) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestWriteRoutesRequireAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/expenses", "", `{"title":"x"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated POST status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	token := registerUser(t, ts)

	// Add an expense shared by the whole roster.
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/expenses", token,
		`{"date":"2026-08-14","title":"dinner","cost":100,"category":"food","payer":"ME"}`)
	added := decodeBody[mutationResponse](t, resp)
	if !added.Accepted || added.ID == 0 {
		t.Fatalf("add response = %+v, want accepted with id", added)
	}

	t.Run("summary reflects the expense", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/summary", "", "")
		sum := decodeBody[summaryResponse](t, resp)
		if sum.TotalSpent != 100 || sum.Remaining != 500000-100 {
			t.Errorf("summary = %+v", sum)
		}
	})

	t.Run("member stats expose paid/share/diff", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/members/stats", "", "")
		stats := decodeBody[[]memberStatResponse](t, resp)
		if len(stats) != len(testRoster) {
			t.Fatalf("got %d member stats, want %d", len(stats), len(testRoster))
		}
		for _, s := range stats {
			if s.Member == "ME" && (s.Paid != 100 || s.Share != 25 || s.Diff != 75) {
				t.Errorf("ME stats = %+v, want paid=100 share=25 diff=75", s)
			}
		}
	})

	t.Run("settlements and per-member detail", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/settlements", "", "")
		txs := decodeBody[[]transactionResponse](t, resp)
		if len(txs) != 3 {
			t.Fatalf("got %d settlements, want 3", len(txs))
		}

		resp = doJSON(t, http.MethodGet, ts.URL+"/api/v1/members/J/settlement", "", "")
		detail := decodeBody[[]settlementItemResponse](t, resp)
		if len(detail) != 1 || detail[0].Direction != "send" || detail[0].Counterparty != "ME" {
			t.Errorf("J detail = %+v, want one send to ME", detail)
		}
	})

	t.Run("unknown member detail is 404", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/members/GHOST/settlement", "", "")
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("silent rejection reports accepted=false", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/expenses", token,
			`{"date":"2026-08-14","title":"bad","cost":10,"payer":"GHOST"}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		out := decodeBody[mutationResponse](t, resp)
		if out.Accepted {
			t.Error("entry with unknown payer was accepted")
		}
	})

	t.Run("date filter", func(t *testing.T) {
		resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/expenses?date=2026-08-14", "", "")
		entries := decodeBody[[]models.ExpenseEntry](t, resp)
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		resp = doJSON(t, http.MethodGet, ts.URL+"/api/v1/expenses?date=2026-01-01", "", "")
		entries = decodeBody[[]models.ExpenseEntry](t, resp)
		if len(entries) != 0 {
			t.Errorf("got %d entries for unmatched date, want 0", len(entries))
		}
	})

	t.Run("delete then views reset", func(t *testing.T) {
		url := fmt.Sprintf("%s/api/v1/expenses/%d", ts.URL, added.ID)
		resp := doJSON(t, http.MethodDelete, url, token, "")
		out := decodeBody[mutationResponse](t, resp)
		if !out.Accepted {
			t.Fatal("delete of existing entry not accepted")
		}

		resp = doJSON(t, http.MethodGet, ts.URL+"/api/v1/settlements", "", "")
		txs := decodeBody[[]transactionResponse](t, resp)
		if len(txs) != 0 {
			t.Errorf("got %d settlements after delete, want 0", len(txs))
		}
	})

	t.Run("delete unknown id is a no-op", func(t *testing.T) {
		resp := doJSON(t, http.MethodDelete, ts.URL+"/api/v1/expenses/424242", token, "")
		out := decodeBody[mutationResponse](t, resp)
		if out.Accepted {
			t.Error("delete of unknown id reported accepted")
		}
	})
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t)
	registerUser(t, ts)

	t.Run("valid credentials", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/login", "",
			`{"email":"me@trip.example","password":"longenough"}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		out := decodeBody[authResponse](t, resp)
		if out.Token == "" {
			t.Error("login returned empty token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/login", "",
			`{"email":"me@trip.example","password":"wrongwrong"}`)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})
}
