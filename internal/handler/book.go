package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/muhammadchandra19/matchbook/internal/app/engine"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	pkgerrors "github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	defaultDepth = 10
	maxDepth     = 100
	defaultLimit = 50
	maxLimit     = 1000
)

// BookReader is the read side of the engine.
type BookReader interface {
	BestBid() (orderbookv1.Order, error)
	BestAsk() (orderbookv1.Order, error)
	Levels(depth int) (bids, asks []orderbookv1.PriceLevel)
	RecentTrades(n int) []orderbookv1.Trade
	Stats() engine.Stats
}

// BookHandler handles HTTP requests for book and trade queries.
type BookHandler struct {
	book BookReader
	pair string
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(book BookReader, pair string) *BookHandler {
	return &BookHandler{book: book, pair: pair}
}

type orderResponse struct {
	Pair         string          `json:"pair"`
	OrderID      int64           `json:"orderID"`
	Side         string          `json:"side"`
	Type         string          `json:"type"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity"`
	CreationTime time.Time       `json:"creationTime"`
	ExpiresAt    *time.Time      `json:"expiresAt,omitempty"`
}

type levelResponse struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Orders   int             `json:"orders"`
}

type bookResponse struct {
	Pair   string           `json:"pair"`
	Bids   []levelResponse  `json:"bids"`
	Asks   []levelResponse  `json:"asks"`
	Spread *decimal.Decimal `json:"spread,omitempty"`
}

type tradeResponse struct {
	BuyOrderID  int64           `json:"buyOrderID"`
	SellOrderID int64           `json:"sellOrderID"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Timestamp   time.Time       `json:"timestamp"`
}

type tradesResponse struct {
	Pair   string          `json:"pair"`
	Trades []tradeResponse `json:"trades"`
}

// GetBestBid handles GET /v1/book/best-bid.
func (h *BookHandler) GetBestBid(w http.ResponseWriter, r *http.Request) {
	h.writeBest(w, h.book.BestBid)
}

// GetBestAsk handles GET /v1/book/best-ask.
func (h *BookHandler) GetBestAsk(w http.ResponseWriter, r *http.Request) {
	h.writeBest(w, h.book.BestAsk)
}

func (h *BookHandler) writeBest(w http.ResponseWriter, best func() (orderbookv1.Order, error)) {
	order, err := best()
	if err != nil {
		mapBookError(w, err)
		return
	}

	resp := orderResponse{
		Pair:         h.pair,
		OrderID:      order.ID,
		Side:         string(order.Side),
		Type:         string(order.Type),
		Price:        order.Price,
		Quantity:     order.Quantity,
		CreationTime: order.CreationTime,
	}
	if expiresAt, ok := order.ExpiryTime(); ok {
		resp.ExpiresAt = &expiresAt
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetBook handles GET /v1/book?depth=N.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	depth, ok := parseBound(w, r, "depth", defaultDepth, maxDepth)
	if !ok {
		return
	}

	bids, asks := h.book.Levels(depth)
	resp := bookResponse{
		Pair: h.pair,
		Bids: toLevels(bids),
		Asks: toLevels(asks),
	}
	if len(bids) > 0 && len(asks) > 0 {
		spread := asks[0].Price.Sub(bids[0].Price)
		resp.Spread = &spread
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetTrades handles GET /v1/trades?limit=N.
func (h *BookHandler) GetTrades(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseBound(w, r, "limit", defaultLimit, maxLimit)
	if !ok {
		return
	}

	trades := h.book.RecentTrades(limit)
	resp := tradesResponse{
		Pair:   h.pair,
		Trades: make([]tradeResponse, len(trades)),
	}
	for i, t := range trades {
		resp.Trades[i] = tradeResponse{
			BuyOrderID:  t.BuyOrderID,
			SellOrderID: t.SellOrderID,
			Price:       t.Price,
			Quantity:    t.Quantity,
			Timestamp:   t.Timestamp,
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetStats handles GET /v1/stats.
func (h *BookHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.book.Stats())
}

func toLevels(levels []orderbookv1.PriceLevel) []levelResponse {
	out := make([]levelResponse, len(levels))
	for i, l := range levels {
		out[i] = levelResponse{Price: l.Price, Quantity: l.Quantity, Orders: l.Orders}
	}
	return out
}

// parseBound reads a positive integer query parameter, capped at upper.
func parseBound(w http.ResponseWriter, r *http.Request, name string, def, upper int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		WriteError(w, http.StatusBadRequest, string(pkgerrors.GeneralBadRequestError),
			name+" must be a positive integer")
		return 0, false
	}
	return min(n, upper), true
}

func mapBookError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orderbookv1.ErrOrderNotFound):
		WriteError(w, http.StatusNotFound, string(pkgerrors.OrderNotFoundError), "side is empty")
	default:
		WriteError(w, http.StatusInternalServerError, string(pkgerrors.GeneralInternalServerError),
			"An unexpected error occurred")
	}
}
