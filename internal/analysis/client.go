package analysis

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"trade-dashboard-go/internal/config"
	"trade-dashboard-go/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	analyzePath = "/api/analyze"

	// TimeLayout is the timestamp format the analysis server emits.
	TimeLayout = "2006-01-02 15:04:05"
)

// ClientInterface defines the interface for the analysis server client.
type ClientInterface interface {
	Analyze(ctx context.Context, files []File, thresholdHours int) ([]models.Trade, error)
}

// File is one user-selected trade history file to submit for analysis.
type File struct {
	Name   string
	Reader io.Reader
}

// Client submits trade history files to the external analysis server and
// decodes the computed trade records. It implements ClientInterface.
type Client struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new analysis server client.
func NewClient(cfg *config.Analysis, logger *zap.Logger) *Client {
	client := resty.New().SetBaseURL(cfg.BaseURL)

	// Uploads are user-initiated and rare; the limiter only guards against
	// runaway form resubmission.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:  client,
		logger:  logger,
		limiter: limiter,
	}
}

// wire types for the analyze endpoint

type tradeRecord struct {
	ID             string          `json:"id"`
	Contract       string          `json:"contract"`
	Type           string          `json:"type"`
	PnL            decimal.Decimal `json:"pnl"`
	HoldingPeriod  string          `json:"holding_period"`
	OpenTime       string          `json:"open_time"`
	CloseTime      string          `json:"close_time"`
	FundingFee     decimal.Decimal `json:"funding_fee"`
	TradeFees      decimal.Decimal `json:"trade_fees"`
	CumulativePnL  decimal.Decimal `json:"cumulative_pnl"`
	CumulativeFees decimal.Decimal `json:"cumulative_fees"`
}

type analyzeResponse struct {
	Trades []tradeRecord `json:"trades"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Analyze submits the files plus the day/swing threshold as multipart form
// data and returns the computed trades sorted ascending by close time.
// No retries are attempted; an upload either lands or is reported.
func (c *Client) Analyze(ctx context.Context, files []File, thresholdHours int) ([]models.Trade, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	req := c.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"threshold_hours": strconv.Itoa(thresholdHours),
		}).
		SetResult(&analyzeResponse{}).
		SetError(&errorResponse{})

	for _, f := range files {
		req.SetFileReader("files", f.Name, f.Reader)
	}

	c.logger.Debug("Submitting files for analysis",
		zap.Int("files", len(files)),
		zap.Int("threshold_hours", thresholdHours),
	)

	resp, err := req.Post(analyzePath)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}

	if resp.IsError() {
		apiErr, _ := resp.Error().(*errorResponse)
		if apiErr != nil && apiErr.Error == mixedFilesSentinel {
			return nil, &MixedFilesError{Message: apiErr.Message}
		}
		msg := ""
		if apiErr != nil {
			msg = apiErr.Error
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}

	result := resp.Result().(*analyzeResponse)
	if len(result.Trades) == 0 {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Message:    "analysis response contained no trades",
		}
	}

	trades, err := convertTrades(result.Trades)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].CloseTime.Before(trades[j].CloseTime)
	})

	c.logger.Info("Analysis completed", zap.Int("trades", len(trades)))
	return trades, nil
}

func convertTrades(records []tradeRecord) ([]models.Trade, error) {
	trades := make([]models.Trade, 0, len(records))
	for _, r := range records {
		openTime, err := time.Parse(TimeLayout, r.OpenTime)
		if err != nil {
			return nil, fmt.Errorf("trade %s has invalid open_time %q: %w", r.ID, r.OpenTime, err)
		}
		closeTime, err := time.Parse(TimeLayout, r.CloseTime)
		if err != nil {
			return nil, fmt.Errorf("trade %s has invalid close_time %q: %w", r.ID, r.CloseTime, err)
		}
		trades = append(trades, models.Trade{
			TradeID:        r.ID,
			Contract:       r.Contract,
			Type:           r.Type,
			PnL:            r.PnL,
			HoldingPeriod:  r.HoldingPeriod,
			OpenTime:       openTime,
			CloseTime:      closeTime,
			TradeFees:      r.TradeFees,
			FundingFee:     r.FundingFee,
			CumulativePnL:  r.CumulativePnL,
			CumulativeFees: r.CumulativeFees,
		})
	}
	return trades, nil
}
