package models

// Fee labels as they appear on the marketplace booking quote.
const (
	FeeBaseRent         = "임대료"
	FeeLongTermDiscount = "장기계약 할인"
	FeeManagement       = "관리비용"
	FeeCleaning         = "청소비용"
	FeeContract         = "계약 수수료"
)

// FeeSchedule is the fixed set of booking fee line items for one room.
// Amounts are integer won.
type FeeSchedule struct {
	BaseRent         int `json:"base_rent"`
	LongTermDiscount int `json:"longterm_discount"`
	ManagementFee    int `json:"management_fee"`
	CleaningFee      int `json:"cleaning_fee"`
	ContractFee      int `json:"contract_fee"`
}

// FeeItem is one labeled line item.
type FeeItem struct {
	Label  string
	Amount int
}

// Items returns the line items in the marketplace's display order.
func (f *FeeSchedule) Items() []FeeItem {
	return []FeeItem{
		{FeeBaseRent, f.BaseRent},
		{FeeLongTermDiscount, f.LongTermDiscount},
		{FeeManagement, f.ManagementFee},
		{FeeCleaning, f.CleaningFee},
		{FeeContract, f.ContractFee},
	}
}
