package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// OrderData carries everything the service order print view needs,
// already formatted as display strings.
type OrderData struct {
	ShopName     string
	ShopDocument string
	ShopPhone    string
	ShopEmail    string
	ShopAddress  string

	Number    string
	Status    string
	IssueDate string

	CustomerName     string
	CustomerPhone    string
	CustomerDocument string

	Equipment    string
	Brand        string
	Model        string
	SerialNumber string
	Accessories  string

	ProblemDescription string
	TechnicalReport    string

	Items []OrderItem

	LaborFee  string
	Discount  string
	Surcharge string
	Total     string
}

// OrderItem is a single line item on the printed order
type OrderItem struct {
	Description string
	Qty         int
	UnitPrice   string
	Total       string
}

// RenderOrder builds the service order PDF and returns the document bytes
func RenderOrder(data OrderData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	// Shop header
	m.AddRow(24,
		col.New(8).Add(
			text.New(data.ShopName, props.Text{Size: 14, Style: fontstyle.Bold}),
			text.New(data.ShopDocument, props.Text{Size: 9, Top: 7}),
			text.New(data.ShopAddress, props.Text{Size: 9, Top: 11}),
			text.New(data.ShopPhone+"  "+data.ShopEmail, props.Text{Size: 9, Top: 15}),
		),
		col.New(4).Add(
			text.New("Service Order", props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
			text.New("Nr "+data.Number, props.Text{Size: 11, Top: 6, Align: align.Right}),
			text.New(data.IssueDate, props.Text{Size: 9, Top: 11, Align: align.Right}),
			text.New(data.Status, props.Text{Size: 9, Top: 15, Align: align.Right}),
		),
	)

	// Customer and equipment
	m.AddRow(28,
		col.New(6).Add(
			text.New("Customer", props.Text{Style: fontstyle.Bold, Size: 10}),
			text.New(data.CustomerName, props.Text{Size: 9, Top: 5}),
			text.New(data.CustomerDocument, props.Text{Size: 9, Top: 9}),
			text.New(data.CustomerPhone, props.Text{Size: 9, Top: 13}),
		),
		col.New(6).Add(
			text.New("Equipment", props.Text{Style: fontstyle.Bold, Size: 10}),
			text.New(data.Equipment, props.Text{Size: 9, Top: 5}),
			text.New(joinLabel("Brand", data.Brand)+"  "+joinLabel("Model", data.Model), props.Text{Size: 9, Top: 9}),
			text.New(joinLabel("Serial", data.SerialNumber), props.Text{Size: 9, Top: 13}),
			text.New(joinLabel("Accessories", data.Accessories), props.Text{Size: 9, Top: 17}),
		),
	)

	m.AddRow(8,
		text.NewCol(12, "Reported problem", props.Text{Style: fontstyle.Bold, Size: 10}),
	)
	m.AddRow(14,
		text.NewCol(12, data.ProblemDescription, props.Text{Size: 9}),
	)

	if data.TechnicalReport != "" {
		m.AddRow(8,
			text.NewCol(12, "Technical report", props.Text{Style: fontstyle.Bold, Size: 10}),
		)
		m.AddRow(14,
			text.NewCol(12, data.TechnicalReport, props.Text{Size: 9}),
		)
	}

	// Items table
	m.AddRow(8,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(7,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Total, props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Totals
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "Labor", props.Text{Size: 9}),
		text.NewCol(2, data.LaborFee, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "Discount", props.Text{Size: 9}),
		text.NewCol(2, data.Discount, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, "Surcharge", props.Text{Size: 9}),
		text.NewCol(2, data.Surcharge, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, data.Total, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func joinLabel(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}
