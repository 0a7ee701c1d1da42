package pdf

import (
	"context"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type MarotoProvider struct{}

func New() Provider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) RenderInvoice(ctx context.Context, data InvoiceData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(16,
		col.New(6).Add(
			text.New("Invoice number: "+data.InvoiceNumber, props.Text{Top: 0}),
			text.New("Date of issue: "+data.IssueDate, props.Text{Top: 4}),
			text.New("Date due: "+data.DueDate, props.Text{Top: 8}),
		),
		col.New(6),
	)

	issuerLines := partyLines(data.Issuer)
	recipientLines := partyLines(data.Recipient)
	panelHeight := float64(10 + 5*maxLen(issuerLines, recipientLines))

	m.AddRow(panelHeight,
		partyCol("Issuer", issuerLines),
		partyCol("Recipient", recipientLines),
	)

	m.AddRow(8,
		text.NewCol(6, "Article", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range data.Lines {
		m.AddRow(8,
			text.NewCol(6, line.Description, props.Text{Size: 9}),
			text.NewCol(2, line.Quantity, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.Total, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, data.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "VAT", props.Text{Size: 9}),
		text.NewCol(2, data.Vat, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, data.Total, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func partyCol(title string, lines []string) core.Col {
	c := col.New(6).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10}),
	)
	for i, line := range lines {
		c.Add(text.New(line, props.Text{Size: 9, Top: float64(6 + i*5)}))
	}
	return c
}

func partyLines(party Party) []string {
	fields := []struct {
		label string
		value string
	}{
		{"", party.BusinessName},
		{"", party.TradeName},
		{"", party.BusinessType},
		{"UIN: ", party.UniqueIdentificationNumber},
		{"Business no: ", party.BusinessNumber},
		{"Fiscal no: ", party.FiscalNumber},
		{"VAT no: ", party.VatNumber},
		{"Registered: ", party.RegistrationDate},
		{"", party.Address},
		{"", party.Municipality},
		{"", party.PhoneNumber},
		{"", party.Email},
		{"Bank account: ", party.BankAccount},
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		lines = append(lines, f.label+f.value)
	}
	return lines
}

func maxLen(a, b []string) int {
	if len(a) > len(b) {
		return len(a)
	}
	return len(b)
}
