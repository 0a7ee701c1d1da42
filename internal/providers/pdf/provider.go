package pdf

import "context"

// Provider renders an assembled invoice into a downloadable document.
type Provider interface {
	RenderInvoice(ctx context.Context, data InvoiceData) ([]byte, error)
}

// InvoiceData carries everything the renderer needs, already formatted.
// Empty strings mean "omit this field from the document".
type InvoiceData struct {
	InvoiceNumber string
	IssueDate     string
	DueDate       string

	Issuer    Party
	Recipient Party

	Lines []Line

	Subtotal string
	Vat      string
	Total    string
}

type Party struct {
	BusinessName               string
	TradeName                  string
	BusinessType               string
	UniqueIdentificationNumber string
	BusinessNumber             string
	FiscalNumber               string
	VatNumber                  string
	RegistrationDate           string
	Address                    string
	Municipality               string
	PhoneNumber                string
	Email                      string
	BankAccount                string
}

type Line struct {
	Description string
	Quantity    string
	UnitPrice   string
	Total       string
}
