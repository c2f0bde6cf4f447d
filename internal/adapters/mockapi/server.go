// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package mockapi serves a stand-in for the fake store REST API. It backs the
// mock-api command for offline use and the adapter tests.
package mockapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/janderssonse/storefront/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Demo account published by the public upstream.
const (
	DemoUsername = "johnd"
	DemoPassword = "m38rmF$"
	DemoEmail    = "john@gmail.com"
)

const shutdownTimeout = 5 * time.Second

//go:embed products.json
var productsFixture []byte

var (
	errUsernameTaken = errors.New("username already taken")
	errBadLogin      = errors.New("username or password is incorrect")
)

type account struct {
	id       int
	username string
	email    string
	hash     []byte
}

// Server holds the in-memory catalog and accounts.
type Server struct {
	mu         sync.Mutex
	products   []domain.Product
	accounts   map[string]account
	nextUserID int
	secret     []byte
	cost       int
	logging    bool
	now        func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithProducts replaces the embedded catalog.
func WithProducts(products []domain.Product) Option {
	return func(s *Server) {
		s.products = slices.Clone(products)
	}
}

// WithSecret sets the HS256 signing key for issued tokens.
func WithSecret(secret []byte) Option {
	return func(s *Server) {
		s.secret = secret
	}
}

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Server) {
		s.cost = cost
	}
}

// WithRequestLogging enables the chi request logger.
func WithRequestLogging() Option {
	return func(s *Server) {
		s.logging = true
	}
}

// WithClock overrides the token issue time source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a server seeded with the embedded catalog and the demo account.
func New(opts ...Option) (*Server, error) {
	srv := &Server{
		accounts:   make(map[string]account),
		nextUserID: 1,
		secret:     []byte("storefront-mock-secret"),
		cost:       bcrypt.DefaultCost,
		now:        time.Now,
	}

	if err := json.Unmarshal(productsFixture, &srv.products); err != nil {
		return nil, fmt.Errorf("failed to decode product fixture: %w", err)
	}

	for _, opt := range opts {
		opt(srv)
	}

	if _, err := srv.addAccount(DemoUsername, DemoEmail, DemoPassword); err != nil {
		return nil, fmt.Errorf("failed to seed demo account: %w", err)
	}

	return srv, nil
}

// Products returns a copy of the served catalog.
func (s *Server) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.products)
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	if s.logging {
		router.Use(middleware.Logger)
	}

	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(echoRequestID)

	router.Route("/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Get("/categories", s.listCategories)
		r.Get("/{id}", s.getProduct)
	})
	router.Post("/auth/login", s.login)
	router.Post("/users", s.register)

	return router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ready != nil {
		ready(listener.Addr())
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("mock api stopped: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down mock api: %w", err)
		}

		return nil
	}
}

func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(middleware.RequestIDHeader, id)
		}

		next.ServeHTTP(w, r)
	})
}

// wireProduct keeps prices as JSON numbers, like the upstream.
type wireProduct struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

func toWire(p domain.Product) wireProduct {
	out := wireProduct{
		ID:          int(p.ID),
		Title:       p.Title,
		Price:       json.Number(p.Price.String()),
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
	}
	out.Rating.Rate = p.Rating.Rate
	out.Rating.Count = p.Rating.Count

	return out
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products := s.Products()

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit >= 0 && limit < len(products) {
			products = products[:limit]
		}
	}

	out := make([]wireProduct, 0, len(products))
	for _, p := range products {
		out = append(out, toWire(p))
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	var tags []string

	for _, p := range s.Products() {
		if !slices.Contains(tags, p.Category) {
			tags = append(tags, p.Category)
		}
	}

	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "product id should be provided")

		return
	}

	for _, p := range s.Products() {
		if int(p.ID) == id {
			writeJSON(w, http.StatusOK, toWire(p))

			return
		}
	}

	// The upstream answers unknown ids with an empty 200.
	w.WriteHeader(http.StatusOK)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username and password are not provided in JSON format")

		return
	}

	token, err := s.issueToken(req.Username, req.Password)
	if errors.Is(err, errBadLogin) {
		http.Error(w, err.Error(), http.StatusUnauthorized)

		return
	}

	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user payload")

		return
	}

	if strings.TrimSpace(req.Username) == "" || !strings.Contains(req.Email, "@") || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "username, email and password are required")

		return
	}

	user, err := s.addAccount(req.Username, req.Email, req.Password)
	if errors.Is(err, errUsernameTaken) {
		writeMessage(w, http.StatusConflict, err.Error())

		return
	}

	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) addAccount(username, email, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.accounts[username]; taken {
		return domain.User{}, errUsernameTaken
	}

	acct := account{id: s.nextUserID, username: username, email: email, hash: hash}
	s.accounts[username] = acct
	s.nextUserID++

	return domain.User{ID: acct.id, Username: acct.username, Email: acct.email}, nil
}

func (s *Server) issueToken(username, password string) (string, error) {
	s.mu.Lock()
	acct, ok := s.accounts[username]
	s.mu.Unlock()

	if !ok {
		return "", errBadLogin
	}

	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return "", errBadLogin
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  acct.id,
		"user": acct.username,
		"iat":  s.now().Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}
