package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"booking-pricing/internal/domain/amenity"
	"booking-pricing/internal/domain/booking"
	"booking-pricing/internal/domain/pricing"
	"booking-pricing/internal/pkg/config"
	"booking-pricing/internal/pkg/errs"
	"booking-pricing/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmenityPricingClient calls the platform base-pricing endpoint over JSON.
type AmenityPricingClient struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewAmenityPricingClient(cfg config.Config, logger *slog.Logger) *AmenityPricingClient {
	return &AmenityPricingClient{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.Platform.BaseURL), "/"),
		http: &http.Client{
			Timeout: cfg.Platform.Timeout,
		},
		logger: logger,
	}
}

func (c *AmenityPricingClient) Enabled() bool {
	return c != nil && c.baseURL != ""
}

type quoteRequest struct {
	HotelCode    string `json:"hotelCode"`
	AmenityCode  string `json:"amenityCode"`
	FromDate     string `json:"fromDate"`
	ToDate       string `json:"toDate"`
	Adults       int    `json:"adults"`
	ChildrenAges []int  `json:"childrenAges"`
	RoundingMode string `json:"roundingMode"`
	DecimalUnits int32  `json:"decimalUnits"`
}

type quotePayload struct {
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AgeCategories []struct {
		Code   string          `json:"code"`
		Count  int             `json:"count"`
		Amount decimal.Decimal `json:"amount"`
	} `json:"ageCategories"`
	DailyAmounts []struct {
		Date   string          `json:"date"`
		Amount decimal.Decimal `json:"amount"`
	} `json:"dailyAmounts"`
}

// Quote returns the base pricing of one amenity. Every failure is marked ErrUpstreamUnavailable.
func (c *AmenityPricingClient) Quote(ctx context.Context, req queries.AmenityQuoteRequest) (*amenity.BaseQuote, error) {
	if !c.Enabled() {
		return nil, errs.Mark(errs.New("amenity pricing service is not configured"), booking.ErrUpstreamUnavailable)
	}

	endpoint, err := url.JoinPath(c.baseURL, "hotels", req.HotelID.String(), "amenities", req.AmenityID.String(), "base-pricing")
	if err != nil {
		return nil, errs.Wrap(err, "build amenity pricing url")
	}

	childrenAges := req.ChildrenAges
	if childrenAges == nil {
		childrenAges = []int{}
	}
	body, err := json.Marshal(quoteRequest{
		HotelCode:    req.HotelCode,
		AmenityCode:  req.AmenityCode,
		FromDate:     req.From.Format(pricing.DateLayout),
		ToDate:       req.To.Format(pricing.DateLayout),
		Adults:       req.Adults,
		ChildrenAges: childrenAges,
		RoundingMode: req.Rounding.Mode.String(),
		DecimalUnits: req.Rounding.DecimalUnits,
	})
	if err != nil {
		return nil, errs.Wrap(err, "encode amenity pricing request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "build amenity pricing request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "amenity pricing %s", req.AmenityCode), booking.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "amenity pricing response",
		slog.String("amenity", req.AmenityCode),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errs.Mark(
			errs.Newf("amenity pricing %s: status %d: %s", req.AmenityCode, resp.StatusCode, strings.TrimSpace(string(msg))),
			booking.ErrUpstreamUnavailable,
		)
	}

	var payload quotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode amenity pricing response"), booking.ErrUpstreamUnavailable)
	}
	return toBaseQuote(req.AmenityID, payload)
}

func toBaseQuote(amenityID uuid.UUID, p quotePayload) (*amenity.BaseQuote, error) {
	quote := &amenity.BaseQuote{
		AmenityID:   amenityID,
		TotalAmount: p.TotalAmount,
	}
	for _, ac := range p.AgeCategories {
		quote.AgeCategories = append(quote.AgeCategories, amenity.AgeCategoryAmount{
			Code:   ac.Code,
			Count:  ac.Count,
			Amount: ac.Amount,
		})
	}
	for _, d := range p.DailyAmounts {
		date, err := time.Parse(pricing.DateLayout, d.Date)
		if err != nil {
			return nil, errs.Mark(errs.Wrapf(err, "invalid daily amount date %q", d.Date), booking.ErrUpstreamUnavailable)
		}
		quote.DailyAmounts = append(quote.DailyAmounts, pricing.DailyAmount{Date: date, Amount: d.Amount})
	}
	return quote, nil
}
