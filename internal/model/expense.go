package model

import "time"

// Group statuses. SAVE is the only editable state; GW_APPROVED and GW_REJECT
// are stamped by the external approval workflow.
const (
	GroupStatusSave     = "SAVE"
	GroupStatusSubmit   = "SUBMIT"
	GroupStatusApproved = "GW_APPROVED"
	GroupStatusRejected = "GW_REJECT"
)

// Detail types.
const (
	DetailTypeCard = "1" // sourced from an ingested card transaction
	DetailTypeCash = "3" // manually entered cash/receipt line
)

// GroupTypeExpense is the only document type this system issues.
const GroupTypeExpense = "1"

// Group is an expense-settlement document aggregating detail lines.
type Group struct {
	ID                      uint       `json:"id" gorm:"primaryKey"`
	Type                    string     `json:"type" gorm:"size:10;not null;default:'1'"`
	Status                  string     `json:"status" gorm:"size:20;not null"`
	Title                   string     `json:"title" gorm:"size:200"`
	EmpNo                   string     `json:"empNo" gorm:"size:20"`
	EmpName                 string     `json:"empName" gorm:"size:50"`
	ApprovalRequestDatetime *time.Time `json:"approvalRequestDatetime"`
	Reviewer1EmpNo          *string    `json:"reviewer1EmpNo" gorm:"size:20"`
	ApproverEmpNo           *string    `json:"approverEmpNo" gorm:"size:20"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`

	Details []Detail `json:"details,omitempty" gorm:"foreignKey:GroupID"`
}

// Detail is a single expense line. GroupID stays nil until the line is picked
// into a document. Card lines (type "1") carry a CardUsage reference and can
// never be deleted, only moved between groups.
type Detail struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Type           string     `json:"type" gorm:"size:10;not null"`
	GroupID        *uint      `json:"groupId" gorm:"index"`
	CardUsageID    *uint      `json:"cardUsageId"`
	SettlementAmt  float64    `json:"settlementAmt"`
	SupplyAmt      float64    `json:"supplyAmt"`
	TaxAmt         float64    `json:"taxAmt"`
	AccountCode    *string    `json:"accountCode" gorm:"size:50"`
	CostCenterCode *string    `json:"costCenterCode" gorm:"size:50"`
	FundCenterCode *string    `json:"fundCenterCode" gorm:"size:50"`
	WBSCode        *string    `json:"wbsCode" gorm:"column:wbs_code;size:50"`
	Remark         *string    `json:"remark" gorm:"size:500"`
	DeductibleYn   bool       `json:"deductibleYn"`
	ReceiptDate    *time.Time `json:"receiptDate"`
	PostingDate    *time.Time `json:"postingDate"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	CardUsage *CardUsage `json:"cardUsage,omitempty" gorm:"foreignKey:CardUsageID"`
}

// CardUsage is an externally ingested corporate-card transaction. Rows are
// read-only here; the seeder (or an upstream feed) creates them together with
// their type "1" detail line.
type CardUsage struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	TransDate           time.Time  `json:"transDate"`
	ProcessStatus       string     `json:"processStatus" gorm:"size:10"`
	ApprovalDatetime    *time.Time `json:"approvalDatetime"`
	BuyDate             *time.Time `json:"buyDate"`
	ChargeDate          *time.Time `json:"chargeDate"`
	CardNo              string     `json:"cardNo" gorm:"size:30"`
	CardOwnerEmpNo      string     `json:"cardOwnerEmpNo" gorm:"size:20"`
	CardOwnerEmpName    string     `json:"cardOwnerEmpName" gorm:"size:50"`
	CardOwnerEmpOrgCode string     `json:"cardOwnerEmpOrgCode" gorm:"size:20"`
	CardOwnerEmpOrgName string     `json:"cardOwnerEmpOrgName" gorm:"size:100"`
	CardIssuerCode      string     `json:"cardIssuerCode" gorm:"size:20"`
	CardIssuerName      string     `json:"cardIssuerName" gorm:"size:50"`
	ApprovalNo          string     `json:"approvalNo" gorm:"size:30"`
	Currency            string     `json:"currency" gorm:"size:10"`
	SupplyAmt           float64    `json:"supplyAmt"`
	TaxAmt              float64    `json:"taxAmt"`
	TotalAmt            float64    `json:"totalAmt"`
	KrwAmt              float64    `json:"krwAmt"`
	DeductibleYn        bool       `json:"deductibleYn"`
	AbroadUseYn         bool       `json:"abroadUseYn"`
	SupplierNo          string     `json:"supplierNo" gorm:"size:20"`
	SupplierName        string     `json:"supplierName" gorm:"size:100"`
	IndustryCode        string     `json:"industryCode" gorm:"size:20"`
	IndustryName        string     `json:"industryName" gorm:"size:100"`
	IndustryType        string     `json:"industryType" gorm:"size:10"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
