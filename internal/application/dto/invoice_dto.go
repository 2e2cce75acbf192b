package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-renderer/internal/domain"
	"github.com/jhoicas/invoice-renderer/internal/domain/entity"
)

// Number acepta un número JSON, un string numérico o null. Cualquier otro
// valor (o uno no finito) se normaliza a 0.
type Number float64

// UnmarshalJSON implementa json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == 'n' {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*n = Number(f)
	return nil
}

// Text acepta un string, un número o null y conserva su forma textual.
type Text string

// UnmarshalJSON implementa json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == 'n' {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	if f, err := strconv.ParseFloat(string(data), 64); err == nil {
		*t = Text(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	*t = Text(data)
	return nil
}

// Flag acepta cualquier valor JSON con veracidad laxa: false, null, 0, ""
// y NaN son falsos; cualquier otro valor (incluido "false") es verdadero.
type Flag bool

// UnmarshalJSON implementa json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = false
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case 'n', 'f':
		return nil
	case 't', '[', '{':
		*f = true
	case '"':
		*f = len(data) > 2
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		*f = Flag(err == nil && n != 0 && !math.IsNaN(n))
	}
	return nil
}

// InvoiceRequest body para POST /generate-invoice y los endpoints de vista previa.
// custom_services se conserva crudo: su forma se valida en ToEntity.
type InvoiceRequest struct {
	ID           Text   `json:"id"`
	CustomerName string `json:"customer_name"`
	SignerName   string `json:"signer_name,omitempty"`
	SignerTitle  string `json:"signer_title,omitempty"`
	SignerEmail  string `json:"signer_email,omitempty"`
	SignerPhone  string `json:"signer_phone,omitempty"`

	BillByUser     Flag `json:"bill_by_user"`
	BillByEmployee Flag `json:"bill_by_employee"`
	AnnualInvoice  Flag `json:"annual_invoice"`

	UserPrice           Number `json:"user_price"`
	ActiveUsersAvg      Number `json:"active_users_avg"`
	EmployeePrice       Number `json:"employee_price"`
	EmployeesTrackedAvg Number `json:"employees_tracked_avg"`
	DeploymentFee       Number `json:"deployment_fee"`
	MRRAnalytics        Number `json:"mrr_analytics"`
	FreeAnalytics       Flag   `json:"free_analytics"`

	UseTimekeeper  Flag `json:"use_timekeeper"`
	FreeTimekeeper Flag `json:"free_timekeeper"`
	UseInspector   Flag `json:"use_inspector"`
	FreeInspector  Flag `json:"free_inspector"`
	UseTraining    Flag `json:"use_training"`
	UseSelfAudit   Flag `json:"use_selfaudit"`

	CustomServices json.RawMessage `json:"custom_services"`

	Note string `json:"note,omitempty"`
}

// CustomServiceRequest una línea de custom_services.
type CustomServiceRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Price       Number `json:"price"`
	Amount      Number `json:"amount"`
	Term        string `json:"term"`
	Discount    Flag   `json:"discount"`
}

// DecodeInvoiceRequest decodifica un registro JSON completo.
func DecodeInvoiceRequest(data []byte) (*InvoiceRequest, error) {
	var in InvoiceRequest
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("dto: decodificar factura: %w", err)
	}
	return &in, nil
}

// ToEntity aplica los valores por defecto y valida la forma de custom_services.
func (in *InvoiceRequest) ToEntity() (*entity.InvoiceRecord, error) {
	lines, err := parseCustomServices(in.CustomServices)
	if err != nil {
		return nil, err
	}
	return &entity.InvoiceRecord{
		ID:                  string(in.ID),
		CustomerName:        in.CustomerName,
		SignerName:          in.SignerName,
		SignerTitle:         in.SignerTitle,
		SignerEmail:         in.SignerEmail,
		SignerPhone:         in.SignerPhone,
		BillByUser:          bool(in.BillByUser),
		BillByEmployee:      bool(in.BillByEmployee),
		AnnualInvoice:       bool(in.AnnualInvoice),
		UserPrice:           float64(in.UserPrice),
		ActiveUsersAvg:      float64(in.ActiveUsersAvg),
		EmployeePrice:       float64(in.EmployeePrice),
		EmployeesTrackedAvg: float64(in.EmployeesTrackedAvg),
		DeploymentFee:       float64(in.DeploymentFee),
		MRRAnalytics:        float64(in.MRRAnalytics),
		FreeAnalytics:       bool(in.FreeAnalytics),
		UseTimekeeper:       bool(in.UseTimekeeper),
		FreeTimekeeper:      bool(in.FreeTimekeeper),
		UseInspector:        bool(in.UseInspector),
		FreeInspector:       bool(in.FreeInspector),
		UseTraining:         bool(in.UseTraining),
		UseSelfAudit:        bool(in.UseSelfAudit),
		CustomServices:      lines,
		Note:                in.Note,
	}, nil
}

func parseCustomServices(raw json.RawMessage) ([]entity.CustomServiceLine, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, &domain.InvalidRecordError{Field: "custom_services", Reason: "debe ser un arreglo"}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &domain.InvalidRecordError{Field: "custom_services", Reason: err.Error()}
	}

	lines := make([]entity.CustomServiceLine, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("custom_services[%d]", i)
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, &domain.InvalidRecordError{Field: field, Reason: "debe ser un objeto"}
		}
		var cs CustomServiceRequest
		if err := json.Unmarshal(item, &cs); err != nil {
			return nil, &domain.InvalidRecordError{Field: field, Reason: err.Error()}
		}
		lines = append(lines, entity.CustomServiceLine{
			Name:        cs.Name,
			Description: cs.Description,
			Price:       float64(cs.Price),
			Amount:      float64(cs.Amount),
			Term:        cs.Term,
			Discount:    bool(cs.Discount),
		})
	}
	return lines, nil
}

// InvoiceTotalsResponse respuesta de POST /api/invoices/totals.
type InvoiceTotalsResponse struct {
	InvoiceNumber     string          `json:"invoice_number"`
	InvoiceDate       string          `json:"invoice_date"`
	ExpiresOn         string          `json:"expires_on"`
	SubscriptionStart string          `json:"subscription_start"`
	GeneratedAt       time.Time       `json:"generated_at"`
	OneTimeTotal      decimal.Decimal `json:"one_time_total"`
	MonthlyTotal      decimal.Decimal `json:"monthly_total"`
	AnnualTotal       decimal.Decimal `json:"annual_total"`
	Total             decimal.Decimal `json:"total"`
	Formatted         FormattedTotals `json:"formatted"`
}

// FormattedTotals los mismos totales como se imprimen en la factura.
type FormattedTotals struct {
	OneTimeTotal string `json:"one_time_total"`
	MonthlyTotal string `json:"monthly_total"`
	AnnualTotal  string `json:"annual_total"`
	Total        string `json:"total"`
}
