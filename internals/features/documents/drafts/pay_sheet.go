package drafts

import "schooldocs_backend/internals/features/documents/calc"

const (
	PayItemEarning   = "earning"
	PayItemDeduction = "deduction"
)

// PayItem is an extra earning or deduction line beyond the fixed fields.
type PayItem struct {
	Key
	Description string `json:"description" validate:"required,max=120"`
	Amount      string `json:"amount" validate:"max=30"`
	Kind        string `json:"kind" validate:"required,oneof=earning deduction"`
}

type PaySheet struct {
	EmployeeName string `json:"employeeName" validate:"required,max=120"`
	EmployeeID   string `json:"employeeId" validate:"required,max=40"`
	Designation  string `json:"designation,omitempty" validate:"max=80"`
	Department   string `json:"department,omitempty" validate:"max=80"`
	Month        string `json:"month" validate:"required,max=30"`
	Year         string `json:"year,omitempty" validate:"max=10"`
	PaymentDate  string `json:"paymentDate,omitempty" validate:"omitempty,datetime=2006-01-02"`

	BasicSalary        string `json:"basicSalary" validate:"required,max=30"`
	HouseRent          string `json:"houseRent,omitempty" validate:"max=30"`
	MedicalAllowance   string `json:"medicalAllowance,omitempty" validate:"max=30"`
	TransportAllowance string `json:"transportAllowance,omitempty" validate:"max=30"`
	OtherAllowance     string `json:"otherAllowance,omitempty" validate:"max=30"`

	ProvidentFund    string `json:"providentFund,omitempty" validate:"max=30"`
	Tax              string `json:"tax,omitempty" validate:"max=30"`
	AdvanceDeduction string `json:"advanceDeduction,omitempty" validate:"max=30"`
	OtherDeduction   string `json:"otherDeduction,omitempty" validate:"max=30"`

	Adjustments Collection[PayItem, *PayItem] `json:"adjustments" validate:"dive"`

	// computed
	Totals calc.Totals `json:"totals"`
}

func (d *PaySheet) DocumentType() string { return TypePaySheet }

func (d *PaySheet) FileName() string {
	return fileName("pay-sheet", d.EmployeeID, d.Month, d.Year)
}

func (d *PaySheet) Earnings() []string {
	out := []string{d.BasicSalary, d.HouseRent, d.MedicalAllowance, d.TransportAllowance, d.OtherAllowance}
	for _, a := range d.Adjustments {
		if a.Kind == PayItemEarning {
			out = append(out, a.Amount)
		}
	}
	return out
}

func (d *PaySheet) Deductions() []string {
	out := []string{d.ProvidentFund, d.Tax, d.AdvanceDeduction, d.OtherDeduction}
	for _, a := range d.Adjustments {
		if a.Kind == PayItemDeduction {
			out = append(out, a.Amount)
		}
	}
	return out
}

func (d *PaySheet) Recompute() {
	d.Totals = calc.ComputeTotals(d.Earnings(), d.Deductions())
}

func (d *PaySheet) Validate() error {
	ve := validateStruct(d)
	if calc.ParseNumber(d.BasicSalary) <= 0 {
		ve.add("basicSalary", "gt=0")
	}
	if d.Totals.Net < 0 {
		ve.add("totals.net", "gte=0")
	}
	return ve.orNil()
}

func (d *PaySheet) list() listOps     { return &d.Adjustments }
func (d *PaySheet) listField() string { return "adjustments" }
