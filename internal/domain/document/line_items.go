package document

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-renderer/internal/domain/billing"
	"github.com/jhoicas/invoice-renderer/internal/domain/entity"
	"github.com/jhoicas/invoice-renderer/pkg/money"
)

// RowKind identifica el origen de una fila de la tabla de servicios.
type RowKind string

const (
	RowDeploymentFee RowKind = "deployment_fee"
	RowAnalytics     RowKind = "analytics"
	RowTimekeeper    RowKind = "timekeeper"
	RowInspector     RowKind = "inspector"
	RowTraining      RowKind = "training"
	RowSelfAudit     RowKind = "selfaudit"
	RowBinders       RowKind = "binders"
	RowCustom        RowKind = "custom"
)

// LineItem es una fila ya formateada de la tabla de servicios.
type LineItem struct {
	Kind        RowKind
	Name        string
	Description string
	Price       string
	Quantity    string
	Term        string
	Total       string
	Discount    bool
}

// lineItemDescriptor asocia una condición de inclusión con el constructor de
// la fila. Se evalúan en el orden de lineItemDescriptors.
type lineItemDescriptor struct {
	kind    RowKind
	include func(r *entity.InvoiceRecord) bool
	build   func(r *entity.InvoiceRecord, e catalogEntry) LineItem
}

var lineItemDescriptors = []lineItemDescriptor{
	{
		kind:    RowDeploymentFee,
		include: func(r *entity.InvoiceRecord) bool { return r.DeploymentFee > 0 },
		build: func(r *entity.InvoiceRecord, e catalogEntry) LineItem {
			fee := money.USD(decimal.NewFromFloat(r.DeploymentFee))
			return row(RowDeploymentFee, e, fee, "1", termOneTime, fee)
		},
	},
	{
		kind:    RowAnalytics,
		include: func(r *entity.InvoiceRecord) bool { return r.MRRAnalytics > 0 || r.FreeAnalytics },
		build: func(r *entity.InvoiceRecord, e catalogEntry) LineItem {
			price := money.Free
			if !r.FreeAnalytics {
				price = money.USD(decimal.NewFromFloat(r.MRRAnalytics))
			}
			return row(RowAnalytics, e, price, "1", termMonthly, price)
		},
	},
	{
		kind:    RowTimekeeper,
		include: func(r *entity.InvoiceRecord) bool { return r.UseTimekeeper },
		build: func(r *entity.InvoiceRecord, e catalogEntry) LineItem {
			unit, qty := r.UserPrice, r.ActiveUsersAvg
			if r.BillByEmployee {
				unit, qty = r.EmployeePrice, r.EmployeesTrackedAvg
			}
			price, total := money.Free, money.Free
			if !r.FreeTimekeeper {
				price = money.USD(decimal.NewFromFloat(unit))
				total = money.USD(billing.Product(unit, qty))
			}
			return row(RowTimekeeper, e, price, money.Quantity(qty), termMonthly, total)
		},
	},
	{
		kind:    RowInspector,
		include: func(r *entity.InvoiceRecord) bool { return r.UseInspector },
		build: func(r *entity.InvoiceRecord, e catalogEntry) LineItem {
			price, total := money.Free, money.Free
			if !inspectorIsFree(r) {
				price = money.USD(decimal.NewFromFloat(r.UserPrice))
				total = money.USD(billing.Product(r.UserPrice, r.ActiveUsersAvg))
			}
			return row(RowInspector, e, price, money.Quantity(r.ActiveUsersAvg), termMonthly, total)
		},
	},
	{
		kind:    RowTraining,
		include: func(r *entity.InvoiceRecord) bool { return r.UseTraining },
		build:   includedRow(RowTraining),
	},
	{
		kind:    RowSelfAudit,
		include: func(r *entity.InvoiceRecord) bool { return r.UseSelfAudit },
		build:   includedRow(RowSelfAudit),
	},
	{
		kind:    RowBinders,
		include: func(*entity.InvoiceRecord) bool { return true },
		build:   includedRow(RowBinders),
	},
}

// inspectorIsFree: Inspector va incluido si es gratis o si ya se paga
// TimeKeeper por usuario.
func inspectorIsFree(r *entity.InvoiceRecord) bool {
	return r.FreeInspector || (r.BillByUser && r.UseTimekeeper)
}

// includedRow construye filas de módulos incluidos sin costo.
func includedRow(kind RowKind) func(r *entity.InvoiceRecord, e catalogEntry) LineItem {
	return func(r *entity.InvoiceRecord, e catalogEntry) LineItem {
		return row(kind, e, money.Free, money.Quantity(r.ActiveUsersAvg), termMonthly, money.Free)
	}
}

func row(kind RowKind, e catalogEntry, price, qty, term, total string) LineItem {
	return LineItem{
		Kind:        kind,
		Name:        e.name,
		Description: e.description,
		Price:       price,
		Quantity:    qty,
		Term:        term,
		Total:       total,
	}
}

// LineItems devuelve las filas de la tabla en orden fijo: catálogo y luego
// servicios personalizados en el orden de entrada.
func LineItems(r *entity.InvoiceRecord) []LineItem {
	entries := catalog(r.ActiveUsersAvg)
	items := make([]LineItem, 0, len(lineItemDescriptors)+len(r.CustomServices))
	for _, d := range lineItemDescriptors {
		if d.include(r) {
			items = append(items, d.build(r, entries[d.kind]))
		}
	}
	for _, line := range r.CustomServices {
		items = append(items, customLineItem(line, r.AnnualInvoice))
	}
	return items
}

func customLineItem(line entity.CustomServiceLine, annualInvoice bool) LineItem {
	total := money.USD(billing.LineGross(line, annualInvoice))
	if line.Discount {
		total = "-" + total
	}
	return LineItem{
		Kind:        RowCustom,
		Name:        nonEmpty(line.Name, customServiceFallback),
		Description: nonEmpty(line.Description, customServiceFallback),
		Price:       money.USD(decimal.NewFromFloat(line.Price)),
		Quantity:    money.Quantity(line.Quantity()),
		Term:        line.TermLabel(),
		Total:       total,
		Discount:    line.Discount,
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
