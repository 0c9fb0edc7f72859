package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tripmoa/tripledger/internal/auth"
	"github.com/tripmoa/tripledger/internal/calculator"
	"github.com/tripmoa/tripledger/internal/models"
	"github.com/tripmoa/tripledger/internal/service"
)

type summaryResponse struct {
	TotalBudget int64 `json:"totalBudget"`
	TotalSpent  int64 `json:"totalSpent"`
	Remaining   int64 `json:"remaining"`
}

type memberStatResponse struct {
	Member models.Member `json:"member"`
	Paid   int64         `json:"paid"`
	Share  int64         `json:"share"`
	Diff   int64         `json:"diff"`
}

type categoryStatResponse struct {
	Category string  `json:"category"`
	Amount   int64   `json:"amount"`
	Percent  float64 `json:"percent"`
}

type transactionResponse struct {
	From   models.Member `json:"from"`
	To     models.Member `json:"to"`
	Amount int64         `json:"amount"`
}

type settlementItemResponse struct {
	Direction    string        `json:"direction"`
	Counterparty models.Member `json:"counterparty"`
	Amount       int64         `json:"amount"`
}

type mutationResponse struct {
	Accepted bool  `json:"accepted"`
	ID       int64 `json:"id,omitempty"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum := s.ledger.Summary()
	respondJSON(w, http.StatusOK, summaryResponse{
		TotalBudget: sum.TotalBudget,
		TotalSpent:  sum.TotalSpent,
		Remaining:   sum.Remaining,
	})
}

func (s *Server) handleMemberStats(w http.ResponseWriter, r *http.Request) {
	balances := s.ledger.MemberStats()
	stats := make([]memberStatResponse, 0, len(balances))
	for _, b := range balances {
		stats = append(stats, memberStatResponse{
			Member: b.Member,
			Paid:   b.Paid,
			Share:  b.Owed,
			Diff:   b.Net,
		})
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	categories := s.ledger.CategoryStats()
	stats := make([]categoryStatResponse, 0, len(categories))
	for _, c := range categories {
		stats = append(stats, categoryStatResponse{
			Category: c.Category,
			Amount:   c.Amount,
			Percent:  c.Percent,
		})
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSettlements(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toTransactionResponses(s.ledger.Settlements()))
}

func (s *Server) handleSettlementDetail(w http.ResponseWriter, r *http.Request) {
	member := models.Member(chi.URLParam(r, "member"))
	if !s.ledger.Roster().Contains(member) {
		http.Error(w, "unknown member", http.StatusNotFound)
		return
	}

	items := s.ledger.SettlementDetail(member)
	resp := make([]settlementItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, settlementItemResponse{
			Direction:    string(item.Direction),
			Counterparty: item.Counterparty,
			Amount:       item.Amount,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("date")
	if filter == "" {
		filter = service.FilterAll
	}

	entries := s.ledger.ListExpenses(filter)
	// Newest first for display; the ledger itself keeps insertion order.
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var entry models.ExpenseEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// The core drops inadmissible entries silently; the API reports the
	// outcome without treating it as an error.
	id, ok := s.ledger.AddExpense(r.Context(), entry)
	respondJSON(w, http.StatusOK, mutationResponse{Accepted: ok, ID: id})
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid expense id", http.StatusBadRequest)
		return
	}

	var entry models.ExpenseEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ok := s.ledger.UpdateExpense(r.Context(), id, entry)
	respondJSON(w, http.StatusOK, mutationResponse{Accepted: ok, ID: id})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid expense id", http.StatusBadRequest)
		return
	}

	ok := s.ledger.DeleteExpense(r.Context(), id)
	respondJSON(w, http.StatusOK, mutationResponse{Accepted: ok, ID: id})
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Email: user.Email, DisplayName: user.DisplayName},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, authResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Email: user.Email, DisplayName: user.DisplayName},
	})
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, auth.ErrWeakPassword):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, auth.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func toTransactionResponses(transactions []calculator.Transaction) []transactionResponse {
	resp := make([]transactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		resp = append(resp, transactionResponse{From: tx.From, To: tx.To, Amount: tx.Amount})
	}
	return resp
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
