package entity

// Términos de facturación de las líneas personalizadas.
const (
	TermMonthly = "monthly"
	TermAnnual  = "annual"
)

// InvoiceRecord es el registro de entrada de una factura de suscripción.
// Se construye por petición y no se modifica durante el cálculo.
// Los campos numéricos ya vienen normalizados a valores finitos (0 si faltan)
// cuando provienen de la frontera JSON.
type InvoiceRecord struct {
	ID           string
	CustomerName string

	SignerName  string
	SignerTitle string
	SignerEmail string
	SignerPhone string

	BillByUser     bool
	BillByEmployee bool
	AnnualInvoice  bool

	UserPrice           float64
	ActiveUsersAvg      float64
	EmployeePrice       float64
	EmployeesTrackedAvg float64
	DeploymentFee       float64
	MRRAnalytics        float64
	FreeAnalytics       bool

	UseTimekeeper  bool
	FreeTimekeeper bool
	UseInspector   bool
	FreeInspector  bool
	UseTraining    bool
	UseSelfAudit   bool

	// CustomServices nil significa "no es un arreglo" y se rechaza;
	// un slice vacío es válido.
	CustomServices []CustomServiceLine

	Note string
}

// CustomServiceLine es un ítem con precio libre fuera del catálogo fijo.
type CustomServiceLine struct {
	Name        string
	Description string
	Price       float64
	Amount      float64 // 0 se interpreta como 1
	Term        string  // "monthly", "annual" u otro (pago único)
	Discount    bool
}

// Quantity devuelve la cantidad efectiva de la línea.
func (l CustomServiceLine) Quantity() float64 {
	if l.Amount == 0 {
		return 1
	}
	return l.Amount
}

// IsMonthly indica si la línea es recurrente mensual.
func (l CustomServiceLine) IsMonthly() bool { return l.Term == TermMonthly }

// TermLabel es la etiqueta visible del término.
func (l CustomServiceLine) TermLabel() string {
	switch l.Term {
	case TermMonthly:
		return "Monthly"
	case TermAnnual:
		return "Annual"
	default:
		return "One-Time"
	}
}
