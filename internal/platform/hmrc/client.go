// Package hmrc talks to the HMRC Making Tax Digital VAT API. It fetches
// filing obligations and submits nine-box returns for a single registered
// trader, refreshing OAuth access tokens as needed.
package hmrc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"

	"github.com/ledgerline/ledgerline_app/internal/core/domain"
	"github.com/ledgerline/ledgerline_app/internal/platform/config"
)

const requestTimeout = 30 * time.Second

// Client implements the VAT gateway against the HMRC MTD VAT API.
type Client struct {
	baseURL    string
	vrn        string
	httpClient *http.Client
}

// NewClient builds a Client from configuration. The supplied refresh token is
// exchanged for access tokens transparently by the oauth2 transport.
func NewClient(cfg *config.Config) *Client {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.HMRCClientID,
		ClientSecret: cfg.HMRCClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: cfg.HMRCTokenURL,
		},
	}
	ctx := context.Background()
	httpClient := oauthCfg.Client(ctx, &oauth2.Token{RefreshToken: cfg.HMRCRefreshToken})
	httpClient.Timeout = requestTimeout

	return &Client{
		baseURL:    cfg.HMRCBaseURL,
		vrn:        cfg.HMRCVRN,
		httpClient: httpClient,
	}
}

type obligationsResponse struct {
	Obligations []struct {
		PeriodKey string `json:"periodKey"`
		Start     string `json:"start"`
		End       string `json:"end"`
		Due       string `json:"due"`
		Status    string `json:"status"`
	} `json:"obligations"`
}

// FetchObligations retrieves the trader's VAT filing windows.
func (c *Client) FetchObligations(ctx context.Context) ([]domain.VATObligation, error) {
	url := fmt.Sprintf("%s/organisations/vat/%s/obligations", c.baseURL, c.vrn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build obligations request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.hmrc.1.0+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch VAT obligations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("obligations", resp)
	}

	var body obligationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode obligations response: %w", err)
	}

	obligations := make([]domain.VATObligation, 0, len(body.Obligations))
	for _, o := range body.Obligations {
		start, err := time.Parse(time.DateOnly, o.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid obligation start date %q: %w", o.Start, err)
		}
		end, err := time.Parse(time.DateOnly, o.End)
		if err != nil {
			return nil, fmt.Errorf("invalid obligation end date %q: %w", o.End, err)
		}
		due, err := time.Parse(time.DateOnly, o.Due)
		if err != nil {
			return nil, fmt.Errorf("invalid obligation due date %q: %w", o.Due, err)
		}
		obligations = append(obligations, domain.VATObligation{
			PeriodKey: o.PeriodKey,
			Start:     start,
			End:       end,
			Due:       due,
			Status:    domain.VATObligationStatus(o.Status),
		})
	}
	return obligations, nil
}

type submitReturnRequest struct {
	PeriodKey                    string          `json:"periodKey"`
	VATDueSales                  decimal.Decimal `json:"vatDueSales"`
	VATDueAcquisitions           decimal.Decimal `json:"vatDueAcquisitions"`
	TotalVATDue                  decimal.Decimal `json:"totalVatDue"`
	VATReclaimedCurrPeriod       decimal.Decimal `json:"vatReclaimedCurrPeriod"`
	NetVATDue                    decimal.Decimal `json:"netVatDue"`
	TotalValueSalesExVAT         decimal.Decimal `json:"totalValueSalesExVAT"`
	TotalValuePurchasesExVAT     decimal.Decimal `json:"totalValuePurchasesExVAT"`
	TotalValueGoodsSuppliedExVAT decimal.Decimal `json:"totalValueGoodsSuppliedExVAT"`
	TotalAcquisitionsExVAT       decimal.Decimal `json:"totalAcquisitionsExVAT"`
	Finalised                    bool            `json:"finalised"`
}

type submitReturnResponse struct {
	ProcessingDate   time.Time `json:"processingDate"`
	FormBundleNumber string    `json:"formBundleNumber"`
}

// SubmitVATReturn posts a finalised return for its period. The call is made
// exactly once; callers decide what to do with a failure.
func (c *Client) SubmitVATReturn(ctx context.Context, ret domain.VATReturn) (*domain.VATSubmissionReceipt, error) {
	payload := submitReturnRequest{
		PeriodKey:                    ret.PeriodKey,
		VATDueSales:                  ret.Box1,
		VATDueAcquisitions:           ret.Box2,
		TotalVATDue:                  ret.Box3,
		VATReclaimedCurrPeriod:       ret.Box4,
		NetVATDue:                    ret.Box5,
		TotalValueSalesExVAT:         ret.Box6,
		TotalValuePurchasesExVAT:     ret.Box7,
		TotalValueGoodsSuppliedExVAT: ret.Box8,
		TotalAcquisitionsExVAT:       ret.Box9,
		Finalised:                    ret.Finalised,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode VAT return: %w", err)
	}

	url := fmt.Sprintf("%s/organisations/vat/%s/returns", c.baseURL, c.vrn)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to build submission request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.hmrc.1.0+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit VAT return: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, apiError("returns", resp)
	}

	var body submitReturnResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode submission response: %w", err)
	}

	return &domain.VATSubmissionReceipt{
		ProcessingDate:   body.ProcessingDate,
		FormBundleNumber: body.FormBundleNumber,
	}, nil
}

func apiError(endpoint string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("HMRC %s endpoint returned status %d: %s", endpoint, resp.StatusCode, snippet)
}
