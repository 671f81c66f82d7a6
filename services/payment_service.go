package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dinescan/restaurant-backend/utils"
)

// PaymentConfig holds the Midtrans gateway credentials.
type PaymentConfig struct {
	ServerKey    string
	ClientKey    string
	IsProduction bool
	MerchantName string
}

// PaymentService talks to the Midtrans charge API for QRIS payments.
type PaymentService struct {
	config     *PaymentConfig
	httpClient *http.Client
	baseURL    string // overridable in tests
}

// QRISCharge is the subset of the gateway response the bill flow needs.
type QRISCharge struct {
	TransactionID string    `json:"transaction_id"`
	OrderID       string    `json:"order_id"`
	QRString      string    `json:"qr_string"`
	Status        string    `json:"transaction_status"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func NewPaymentService() *PaymentService {
	cfg := &PaymentConfig{
		ServerKey:    os.Getenv("MIDTRANS_SERVER_KEY"),
		ClientKey:    os.Getenv("MIDTRANS_CLIENT_KEY"),
		IsProduction: os.Getenv("MIDTRANS_ENV") == "production",
		MerchantName: os.Getenv("MIDTRANS_MERCHANT_NAME"),
	}
	if cfg.MerchantName == "" {
		cfg.MerchantName = "DineScan Restaurant"
	}

	ps := &PaymentService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	ps.baseURL = "https://api.sandbox.midtrans.com"
	if cfg.IsProduction {
		ps.baseURL = "https://api.midtrans.com"
	}
	return ps
}

// ValidateConfig reports whether the gateway credentials are usable.
func (ps *PaymentService) ValidateConfig() error {
	if ps.config.ServerKey == "" {
		return fmt.Errorf("MIDTRANS_SERVER_KEY is not set")
	}
	if ps.config.ClientKey == "" {
		return fmt.Errorf("MIDTRANS_CLIENT_KEY is not set")
	}
	return nil
}

// ChargeQRIS creates a QRIS transaction for a bill. The gateway wants whole
// currency units for gross_amount.
func (ps *PaymentService) ChargeQRIS(billNumber string, amount float64) (*QRISCharge, error) {
	if err := ps.ValidateConfig(); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"payment_type": "qris",
		"transaction_details": map[string]interface{}{
			"order_id":     billNumber,
			"gross_amount": int64(amount),
		},
		"item_details": []map[string]interface{}{
			{
				"id":       billNumber,
				"price":    int64(amount),
				"quantity": 1,
				"name":     "Bill payment - " + ps.config.MerchantName,
			},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, ps.baseURL+"/v2/charge", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", ps.authHeader())

	resp, err := ps.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling payment gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment gateway returned %d: %s", resp.StatusCode, string(body))
	}

	var raw struct {
		TransactionID     string `json:"transaction_id"`
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		QRString          string `json:"qr_string"`
		ExpiryTime        string `json:"expiry_time"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("error decoding gateway response: %w", err)
	}

	charge := &QRISCharge{
		TransactionID: raw.TransactionID,
		OrderID:       raw.OrderID,
		QRString:      raw.QRString,
		Status:        raw.TransactionStatus,
	}
	if raw.ExpiryTime != "" {
		if t, err := time.Parse("2006-01-02 15:04:05", raw.ExpiryTime); err == nil {
			charge.ExpiresAt = t
		}
	}

	utils.InfoLogger.Printf("QRIS charge created for %s (tx=%s)", billNumber, charge.TransactionID)
	return charge, nil
}

// CheckStatus queries the gateway for a transaction's current status.
func (ps *PaymentService) CheckStatus(billNumber string) (string, error) {
	if err := ps.ValidateConfig(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodGet, ps.baseURL+"/v2/"+billNumber+"/status", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", ps.authHeader())

	resp, err := ps.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling payment gateway: %w", err)
	}
	defer resp.Body.Close()

	var raw struct {
		TransactionStatus string `json:"transaction_status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	return raw.TransactionStatus, nil
}

func (ps *PaymentService) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(ps.config.ServerKey+":"))
}
