package document

import "github.com/jhoicas/invoice-renderer/pkg/money"

// catalogYear es el año de la edición del catálogo que aparece en los nombres.
const catalogYear = "2025"

// Datos fijos del emisor.
const (
	brandName     = "HeavyConnect Inc."
	brandLogoURL  = "https://utils.heavyconnect.com/logos/icon-black.png"
	brandSales    = "Sales@HeavyConnect.com"
	brandSalesURL = "mailto:sales@heavyconnect.com"
	brandAddress  = "150 Main Street, Suite 130, Salinas, CA 93901"
	brandPhone    = "(833) 722-5727"
)

// Etiquetas de término de las filas del catálogo.
const (
	termOneTime = "One-Time"
	termMonthly = "Monthly"
)

const customServiceFallback = "Custom Service"

type catalogEntry struct {
	name        string
	description string
}

// usersClause completa las descripciones que mencionan licencias.
func usersClause(activeUsers float64) string {
	return " Includes up to " + money.Quantity(activeUsers) + " users licenses."
}

func catalog(activeUsers float64) map[RowKind]catalogEntry {
	users := usersClause(activeUsers)
	return map[RowKind]catalogEntry{
		RowDeploymentFee: {
			name:        catalogYear + " Set-Up & Deployment Fee",
			description: "Account creation, set-up, deployment, and employee training fee.",
		},
		RowAnalytics: {
			name:        catalogYear + " HeavyConnect Analytics",
			description: "HeavyConnect Analytics module monthly subscription.",
		},
		RowBinders: {
			name:        catalogYear + " HeavyConnect Digital Binders",
			description: "HeavyConnect Digital Binders module monthly subscription.",
		},
		RowTimekeeper: {
			name:        catalogYear + " HeavyConnect TimeKeeper Pro",
			description: "HeavyConnect TimeKeeper module monthly subscription." + users,
		},
		RowInspector: {
			name:        catalogYear + " HeavyConnect Inspector Pro",
			description: "HeavyConnect Inspector Pro module monthly subscription." + users,
		},
		RowTraining: {
			name:        catalogYear + " HeavyConnect Training",
			description: "HeavyConnect Training module monthly subscription." + users,
		},
		RowSelfAudit: {
			name:        catalogYear + " HeavyConnect Self Audit",
			description: "HeavyConnect Self Audit module monthly subscription." + users,
		},
	}
}

// purchaseTerms son los párrafos legales fijos. La nota libre del registro se
// inserta antes del último párrafo.
var purchaseTerms = []TermsLine{
	{Text: "By signing this subscription agreement, you agree to use the HeavyConnect platform in accordance with HeavyConnect's Terms & Conditions."},
	{Text: "To view, click ", LinkLabel: "HeavyConnect.com/Terms", LinkURL: "https://heavyconnect.com/index.php/terms"},
	{Text: "HeavyConnect's preferred method of payment is ACH Transfer which is available without a transaction fee."},
	{Text: "We accept credit card payments which incur an additional 3% transaction fee imposed by the credit card payment processor."},
	{Text: "We accept physical check payments which incur a 1% transaction fee imposed by Intuit Quickbooks Payments."},
}

var contactTerms = TermsLine{
	Text:      "For additional details or questions, please contact us at ",
	LinkLabel: "Contact@HeavyConnect.com",
	LinkURL:   "mailto:contact@HeavyConnect.com",
	Suffix:    ".",
}

var signatureLabels = []string{"Company:", "Name:", "Title:", "Signature:", "Date:"}
