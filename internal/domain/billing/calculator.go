// Package billing calcula los totales, fechas y número de una factura de
// suscripción. Todo es puro: la única entrada no determinista es el instante
// de generación, que el llamador inyecta.
package billing

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-renderer/internal/domain"
	"github.com/jhoicas/invoice-renderer/internal/domain/entity"
)

// ExpirationWindow es la vigencia de la factura desde su generación.
const ExpirationWindow = 7 * 24 * time.Hour

var twelve = decimal.NewFromInt(12)

// Totals son los montos derivados del registro.
type Totals struct {
	OneTime decimal.Decimal // cuota de despliegue + líneas no mensuales
	Monthly decimal.Decimal // un mes de suscripción + líneas mensuales
	Annual  decimal.Decimal // Monthly × 12, siempre calculado
	Total   decimal.Decimal // total a pagar
}

// Computation agrupa los totales con los campos derivados de la fecha.
type Computation struct {
	Totals

	// RecurringSubtotal = usuarios + empleados + analytics, antes de cuotas únicas.
	RecurringSubtotal decimal.Decimal

	InvoiceNumber             string
	FormattedDate             string
	FormattedExpirationDate   string
	FormattedSubscriptionDate string
	GeneratedAt               time.Time
}

// Compute deriva totales, fechas y número de factura. now se captura una sola
// vez y se reutiliza para todas las fechas.
func Compute(record *entity.InvoiceRecord, now time.Time) (*Computation, error) {
	if err := Validate(record); err != nil {
		return nil, err
	}

	recurring := RecurringSubtotal(record)
	deploymentFee := decimal.NewFromFloat(record.DeploymentFee)

	var customTotal, oneTimeCustom, monthlyCustom decimal.Decimal
	for _, line := range record.CustomServices {
		customTotal = customTotal.Add(LineNet(line, record.AnnualInvoice))
		if line.IsMonthly() {
			monthlyCustom = monthlyCustom.Add(LineNet(line, false))
		} else {
			oneTimeCustom = oneTimeCustom.Add(LineNet(line, false))
		}
	}

	monthly := recurring.Add(monthlyCustom)
	recurringBilled := recurring
	if record.AnnualInvoice {
		recurringBilled = recurring.Mul(twelve)
	}

	return &Computation{
		Totals: Totals{
			OneTime: deploymentFee.Add(oneTimeCustom),
			Monthly: monthly,
			Annual:  monthly.Mul(twelve),
			Total:   deploymentFee.Add(customTotal).Add(recurringBilled),
		},
		RecurringSubtotal:         recurring,
		InvoiceNumber:             InvoiceNumber(now, record.ID),
		FormattedDate:             FormatLongDate(now),
		FormattedExpirationDate:   FormatLongDate(now.Add(ExpirationWindow)),
		FormattedSubscriptionDate: FormatMonthYear(SubscriptionStart(now)),
		GeneratedAt:               now,
	}, nil
}

// Validate rechaza registros sin secuencia de servicios o con montos no finitos.
func Validate(record *entity.InvoiceRecord) error {
	if record == nil {
		return &domain.InvalidRecordError{Field: "record", Reason: "es obligatorio"}
	}
	if record.CustomServices == nil {
		return &domain.InvalidRecordError{Field: "custom_services", Reason: "debe ser un arreglo"}
	}

	fields := []numericField{
		{"user_price", record.UserPrice},
		{"active_users_avg", record.ActiveUsersAvg},
		{"employee_price", record.EmployeePrice},
		{"employees_tracked_avg", record.EmployeesTrackedAvg},
		{"deployment_fee", record.DeploymentFee},
		{"mrr_analytics", record.MRRAnalytics},
	}
	for i, line := range record.CustomServices {
		fields = append(fields,
			numericField{fmt.Sprintf("custom_services[%d].price", i), line.Price},
			numericField{fmt.Sprintf("custom_services[%d].amount", i), line.Amount},
		)
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &domain.ComputationError{Field: f.name, Reason: "valor no finito"}
		}
	}
	return nil
}

type numericField struct {
	name  string
	value float64
}

// AnalyticsFee es 0 cuando analytics es gratis.
func AnalyticsFee(record *entity.InvoiceRecord) decimal.Decimal {
	if record.FreeAnalytics {
		return decimal.Zero
	}
	return decimal.NewFromFloat(record.MRRAnalytics)
}

// UsersTotal = user_price × active_users_avg solo si se factura por usuario.
func UsersTotal(record *entity.InvoiceRecord) decimal.Decimal {
	if !record.BillByUser {
		return decimal.Zero
	}
	return Product(record.UserPrice, record.ActiveUsersAvg)
}

// EmployeesTotal = employee_price × employees_tracked_avg solo si se factura por empleado.
func EmployeesTotal(record *entity.InvoiceRecord) decimal.Decimal {
	if !record.BillByEmployee {
		return decimal.Zero
	}
	return Product(record.EmployeePrice, record.EmployeesTrackedAvg)
}

// RecurringSubtotal suma usuarios, empleados y analytics.
func RecurringSubtotal(record *entity.InvoiceRecord) decimal.Decimal {
	return UsersTotal(record).Add(EmployeesTotal(record)).Add(AnalyticsFee(record))
}

// LineGross es price × amount, anualizado (×12) si annualize y la línea es mensual.
func LineGross(line entity.CustomServiceLine, annualize bool) decimal.Decimal {
	gross := Product(line.Price, line.Quantity())
	if annualize && line.IsMonthly() {
		gross = gross.Mul(twelve)
	}
	return gross
}

// LineNet es LineGross con signo negativo si la línea es un descuento.
func LineNet(line entity.CustomServiceLine, annualize bool) decimal.Decimal {
	gross := LineGross(line, annualize)
	if line.Discount {
		return gross.Neg()
	}
	return gross
}

// Product multiplica dos montos finitos sin pasar por aritmética float.
func Product(a, b float64) decimal.Decimal {
	return decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b))
}

// InvoiceNumber = YYYYMMDD-<id>.
func InvoiceNumber(now time.Time, id string) string {
	return now.Format("20060102") + "-" + id
}

// SubscriptionStart es el primer día del mes de generación.
func SubscriptionStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// FormatLongDate: "March 7, 2025".
func FormatLongDate(t time.Time) string { return t.Format("January 2, 2006") }

// FormatMonthYear: "March 2025".
func FormatMonthYear(t time.Time) string { return t.Format("January 2006") }
