package services

import (
	"context"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"starwash-api/internal/adapters/persistence/repositories"
)

// ReceiptService builds printable receipt payloads and tracking QR codes
type ReceiptService struct {
	txService    *TransactionService
	settingsRepo repositories.SettingsRepository
}

// NewReceiptService creates a new receipt service
func NewReceiptService(txService *TransactionService, settingsRepo repositories.SettingsRepository) *ReceiptService {
	return &ReceiptService{
		txService:    txService,
		settingsRepo: settingsRepo,
	}
}

// ReceiptLine is one row on the receipt. Per-line amounts are not stored
// on the transaction; the receipt shows quantities and the settled total.
type ReceiptLine struct {
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

// Receipt is the printable payload; the terminal hands it to the browser's
// print dialog as-is.
type Receipt struct {
	ShopName      string        `json:"shop_name"`
	Address       string        `json:"address"`
	Phone         string        `json:"phone"`
	InvoiceNo     string        `json:"invoice_no"`
	CustomerName  string        `json:"customer_name"`
	Lines         []ReceiptLine `json:"lines"`
	Total         float64       `json:"total"`
	AmountGiven   float64       `json:"amount_given"`
	Change        float64       `json:"change"`
	PaymentStatus string        `json:"payment_status"`
	TrackingURL   string        `json:"tracking_url"`
	Footer        string        `json:"footer"`
	IssuedAt      time.Time     `json:"issued_at"`
}

// Build assembles the receipt for an order
func (s *ReceiptService) Build(ctx context.Context, txID uint) (*Receipt, error) {
	tx, err := s.txService.Get(ctx, txID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	lines := []ReceiptLine{
		{Label: tx.ServiceType, Quantity: tx.Loads},
	}
	if tx.DetergentQty > 0 {
		lines = append(lines, ReceiptLine{Label: "Detergent", Quantity: tx.DetergentQty})
	}
	if tx.SoftenerQty > 0 {
		lines = append(lines, ReceiptLine{Label: "Fabric Softener", Quantity: tx.SoftenerQty})
	}

	return &Receipt{
		ShopName:      settings.ShopName,
		Address:       settings.Address,
		Phone:         settings.Phone,
		InvoiceNo:     tx.InvoiceNo,
		CustomerName:  tx.CustomerName,
		Lines:         lines,
		Total:         tx.Price,
		AmountGiven:   tx.AmountGiven,
		Change:        tx.Change,
		PaymentStatus: tx.PaymentStatus,
		TrackingURL:   s.trackingURL(settings.TrackingBaseURL, tx.InvoiceNo),
		Footer:        settings.ReceiptFooter,
		IssuedAt:      time.Now(),
	}, nil
}

// QRCode renders the tracking URL for an order as a PNG
func (s *ReceiptService) QRCode(ctx context.Context, txID uint) ([]byte, error) {
	tx, err := s.txService.Get(ctx, txID)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(s.trackingURL(settings.TrackingBaseURL, tx.InvoiceNo), qrcode.Medium, 256)
}

func (s *ReceiptService) trackingURL(base, invoiceNo string) string {
	if base == "" {
		base = "https://starwash.example.com/track"
	}
	return fmt.Sprintf("%s/%s", base, invoiceNo)
}
