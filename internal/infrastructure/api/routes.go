package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magic-finder/magic-finder/internal/application/handlers"
	"github.com/magic-finder/magic-finder/internal/domain/entities"
	"github.com/magic-finder/magic-finder/internal/domain/ports"
	"github.com/magic-finder/magic-finder/internal/domain/services"
	"github.com/magic-finder/magic-finder/internal/log"
)

// Completer answers name completions.
type Completer interface {
	Handle(ctx context.Context, prefix string, limit int) ([]string, error)
}

// CatalogRouter serves the resolution endpoints.
type CatalogRouter struct {
	store     ports.CatalogStore
	resolver  *services.ResolverService
	display   *services.DisplayService
	completer Completer
	metrics   *Metrics
	logger    *slog.Logger
}

// NewCatalogRouter creates a new CatalogRouter.
func NewCatalogRouter(store ports.CatalogStore, resolver *services.ResolverService, display *services.DisplayService, completer Completer, metrics *Metrics, logger *slog.Logger) *CatalogRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogRouter{
		store:     store,
		resolver:  resolver,
		display:   display,
		completer: completer,
		metrics:   metrics,
		logger:    logger,
	}
}

// Mount registers every endpoint on router.
func (c *CatalogRouter) Mount(router chi.Router) {
	router.Get("/healthz", c.Health)
	router.Handle("/metrics", promhttp.HandlerFor(c.metrics.Registry(), promhttp.HandlerOpts{}))

	router.Route("/v1", func(r chi.Router) {
		r.Get("/resolve", c.Resolve)
		r.Get("/cards/{name}", c.GetCard)
		r.Get("/complete", c.Complete)
	})
}

// CardResponse is the JSON form of a card.
type CardResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TypeLine       string `json:"type_line"`
	OracleText     string `json:"oracle_text"`
	ManaCost       string `json:"mana_cost,omitempty"`
	PowerToughness string `json:"power_toughness,omitempty"`
	Loyalty        string `json:"loyalty,omitempty"`
	ScryfallURI    string `json:"scryfall_uri,omitempty"`
	OtherCardName  string `json:"other_card_name,omitempty"`
}

// ResolveResponse is the body of GET /v1/resolve.
type ResolveResponse struct {
	Kind        string         `json:"kind"`
	Card        *CardResponse  `json:"card,omitempty"`
	Text        string         `json:"text,omitempty"`
	Cards       []CardResponse `json:"cards,omitempty"`
	Words       []string       `json:"words,omitempty"`
	Passthrough []string       `json:"passthrough,omitempty"`
}

// CompleteResponse is the body of GET /v1/complete.
type CompleteResponse struct {
	Names []string `json:"names"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Cards  int    `json:"cards,omitempty"`
	Words  int    `json:"words,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Resolve handles GET /v1/resolve?q=...
func (c *CatalogRouter) Resolve(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	query := req.URL.Query().Get("q")

	start := time.Now()
	match, err := c.resolver.Resolve(ctx, strings.Fields(query))
	c.metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.writeError(w, req, err)
		return
	}
	c.metrics.Resolutions.WithLabelValues(string(match.Kind())).Inc()

	resp := ResolveResponse{Kind: string(match.Kind())}
	switch m := match.(type) {
	case entities.ExactMatch:
		text, err := c.display.Compose(ctx, &m.Card)
		if err != nil {
			c.writeError(w, req, err)
			return
		}
		card := toCardResponse(&m.Card)
		resp.Card = &card
		resp.Text = text
	case entities.Ambiguous:
		resp.Cards = make([]CardResponse, len(m.Cards))
		for i := range m.Cards {
			resp.Cards[i] = toCardResponse(&m.Cards[i])
		}
	case entities.Suggestions:
		resp.Words = m.Words
		resp.Passthrough = m.Passthrough
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetCard handles GET /v1/cards/{name}. With ?text=1 the display string is
// returned as plain text.
func (c *CatalogRouter) GetCard(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	// chi matches on the raw path when one is set, leaving the param escaped.
	name := chi.URLParam(req, "name")
	if req.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid card name"})
			return
		}
		name = unescaped
	}

	card, err := c.resolver.ResolveExact(ctx, []string{name})
	if err != nil {
		c.writeError(w, req, err)
		return
	}

	if wantText, _ := strconv.ParseBool(req.URL.Query().Get("text")); wantText {
		text, err := c.display.Compose(ctx, card)
		if err != nil {
			c.writeError(w, req, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(text + "\n"))
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(card))
}

// Complete handles GET /v1/complete?prefix=...&limit=...
func (c *CatalogRouter) Complete(w http.ResponseWriter, req *http.Request) {
	limit := 0
	if raw := req.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}

	names, err := c.completer.Handle(req.Context(), req.URL.Query().Get("prefix"), limit)
	if err != nil {
		c.writeError(w, req, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, CompleteResponse{Names: names})
}

// Health handles GET /healthz.
func (c *CatalogRouter) Health(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	if err := c.store.CheckPopulated(ctx); err != nil {
		reason := handlers.StoreErrorMessage(err)
		if reason == "" {
			reason = err.Error()
		}
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Reason: reason})
		return
	}

	counts, err := c.store.Counts(ctx)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Reason: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Cards: counts.Cards, Words: counts.Words})
}

func (c *CatalogRouter) writeError(w http.ResponseWriter, req *http.Request, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, services.ErrEmptyQuery):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNoExactMatch):
		status = http.StatusNotFound
	case handlers.StoreErrorMessage(err) != "":
		status = http.StatusServiceUnavailable
		message = handlers.StoreErrorMessage(err)
	}

	if status == http.StatusInternalServerError {
		log.FromContext(req.Context(), c.logger).Error("request failed", "path", req.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func toCardResponse(card *entities.Card) CardResponse {
	return CardResponse{
		ID:             card.ID,
		Name:           card.Name,
		TypeLine:       card.TypeLine,
		OracleText:     card.OracleText,
		ManaCost:       card.ManaCost,
		PowerToughness: card.PowerToughness,
		Loyalty:        card.Loyalty,
		ScryfallURI:    card.ScryfallURI,
		OtherCardName:  card.OtherCardName,
	}
}
