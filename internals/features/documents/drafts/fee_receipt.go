package drafts

import "schooldocs_backend/internals/features/documents/calc"

type FeeItem struct {
	Key
	Description string `json:"description" validate:"required,max=120"`
	Amount      string `json:"amount" validate:"max=30"`
}

type FeeReceipt struct {
	ReceiptNumber string `json:"receiptNumber" validate:"required,max=40"`
	Date          string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StudentName   string `json:"studentName" validate:"required,max=120"`
	FatherName    string `json:"fatherName,omitempty" validate:"max=120"`
	ClassName     string `json:"className" validate:"required,max=40"`
	Section       string `json:"section,omitempty" validate:"max=20"`
	Roll          string `json:"roll,omitempty" validate:"max=20"`
	Month         string `json:"month,omitempty" validate:"max=30"`
	PaymentMethod string `json:"paymentMethod,omitempty" validate:"max=30"`
	Discount      string `json:"discount,omitempty" validate:"max=30"`
	ReceivedBy    string `json:"receivedBy,omitempty" validate:"max=120"`

	Items Collection[FeeItem, *FeeItem] `json:"items" validate:"required,min=1,dive"`

	// computed
	Totals calc.Totals `json:"totals"`
}

func (d *FeeReceipt) DocumentType() string { return TypeFeeReceipt }

func (d *FeeReceipt) FileName() string { return fileName("fee-receipt", d.ReceiptNumber) }

func (d *FeeReceipt) Recompute() {
	amounts := make([]string, len(d.Items))
	for i, it := range d.Items {
		amounts[i] = it.Amount
	}
	d.Totals = calc.ComputeTotals(amounts, []string{d.Discount})
}

func (d *FeeReceipt) Validate() error {
	ve := validateStruct(d)
	if d.Totals.Net < 0 {
		ve.add("discount", "lte_subtotal")
	}
	return ve.orNil()
}

func (d *FeeReceipt) list() listOps     { return &d.Items }
func (d *FeeReceipt) listField() string { return "items" }
