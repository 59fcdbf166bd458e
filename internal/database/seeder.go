package database

import (
	"time"

	"finance-backoffice/internal/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func datePtr(t time.Time) *time.Time { return &t }

// SeedAll loads the reference data a fresh install needs: the MENU_TYPE and
// EXPENSE_STATUS catalogs, the default navigation menus, the SAP lookup
// masters, the placeholder employee, and three sample card usages with their
// card-sourced detail lines. Everything is FirstOrCreate so reruns are safe.
func SeedAll(db *gorm.DB, log *zap.Logger) error {
	if err := seedCodes(db); err != nil {
		return err
	}
	if err := seedMenus(db); err != nil {
		return err
	}
	if err := seedMasters(db); err != nil {
		return err
	}
	if err := seedEmployee(db); err != nil {
		return err
	}
	if err := seedCardUsages(db); err != nil {
		return err
	}
	log.Info("seeding completed")
	return nil
}

func seedCodes(db *gorm.DB) error {
	masters := []model.MasterCode{
		{Code: model.MasterMenuType, CodeName: "메뉴 타입", Description: strPtr("네비게이션 메뉴 구분")},
		{Code: model.MasterExpenseStatus, CodeName: "경비 상태", Description: strPtr("경비정산 문서 상태")},
	}
	for _, m := range masters {
		if err := db.FirstOrCreate(&m, model.MasterCode{Code: m.Code}).Error; err != nil {
			return err
		}
	}

	codes := []model.Code{
		{Code: "A", MasterCode: model.MasterMenuType, CodeName: "관리자", SortOrder: 0},
		{Code: "B", MasterCode: model.MasterMenuType, CodeName: "사용자", SortOrder: 1},
		{Code: model.GroupStatusSave, MasterCode: model.MasterExpenseStatus, CodeName: "저장", SortOrder: 0},
		{Code: model.GroupStatusSubmit, MasterCode: model.MasterExpenseStatus, CodeName: "제출", SortOrder: 1},
		{Code: model.GroupStatusApproved, MasterCode: model.MasterExpenseStatus, CodeName: "승인", SortOrder: 2},
		{Code: model.GroupStatusRejected, MasterCode: model.MasterExpenseStatus, CodeName: "반려", SortOrder: 3},
	}
	for _, c := range codes {
		if err := db.FirstOrCreate(&c, model.Code{Code: c.Code}).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedMenus(db *gorm.DB) error {
	admin := model.Menu{Name: "관리자", FilePath: strPtr("/admin"), Type: "A", SortOrder: 0, IsActive: true}
	if err := db.FirstOrCreate(&admin, model.Menu{Name: admin.Name}).Error; err != nil {
		return err
	}
	expense := model.Menu{Name: "경비정산", FilePath: strPtr("/expense"), Type: "B", SortOrder: 0, IsActive: true}
	if err := db.FirstOrCreate(&expense, model.Menu{Name: expense.Name}).Error; err != nil {
		return err
	}

	children := []model.Menu{
		{Name: "코드 관리", Path: strPtr("/admin/code"), FilePath: strPtr("/admin/code"), Type: "A", SortOrder: 0, ParentID: &admin.ID, IsActive: true},
		{Name: "메뉴 관리", Path: strPtr("/admin/menu"), FilePath: strPtr("/admin/menu"), Type: "A", SortOrder: 1, ParentID: &admin.ID, IsActive: true},
		{Name: "경비 목록", Path: strPtr("/expense/list"), FilePath: strPtr("/expense/list"), Type: "B", SortOrder: 0, ParentID: &expense.ID, IsActive: true},
		{Name: "경비 작성", Path: strPtr("/expense/create"), FilePath: strPtr("/expense/create"), Type: "B", SortOrder: 1, ParentID: &expense.ID, IsActive: true},
	}
	for _, m := range children {
		if err := db.FirstOrCreate(&m, model.Menu{Name: m.Name}).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedMasters(db *gorm.DB) error {
	accounts := []model.Account{
		{Code: "520100", Name: "복리후생비", IsActive: true},
		{Code: "520200", Name: "여비교통비", IsActive: true},
		{Code: "520300", Name: "접대비", IsActive: true},
	}
	for _, a := range accounts {
		if err := db.FirstOrCreate(&a, model.Account{Code: a.Code}).Error; err != nil {
			return err
		}
	}

	costCenters := []model.CostCenter{
		{Code: "CC1000", Name: "경영지원", IsActive: true},
		{Code: "CC2000", Name: "개발", IsActive: true},
	}
	for _, cc := range costCenters {
		if err := db.FirstOrCreate(&cc, model.CostCenter{Code: cc.Code}).Error; err != nil {
			return err
		}
	}

	fundCenters := []model.FundCenter{
		{Code: "FC1000", Name: "운영자금", IsActive: true},
	}
	for _, fc := range fundCenters {
		if err := db.FirstOrCreate(&fc, model.FundCenter{Code: fc.Code}).Error; err != nil {
			return err
		}
	}

	wbsList := []model.WBS{
		{Code: "WBS-2024-001", Name: "신규 서비스 구축", IsActive: true},
	}
	for _, w := range wbsList {
		if err := db.FirstOrCreate(&w, model.WBS{Code: w.Code}).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedEmployee(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	emp := model.Employee{
		EmpNo:    model.PlaceholderEmpNo,
		Name:     "홍길동",
		Password: string(hashed),
		OrgCode:  "ORG001",
		OrgName:  "개발팀",
		IsActive: true,
	}
	return db.FirstOrCreate(&emp, model.Employee{EmpNo: emp.EmpNo}).Error
}

func seedCardUsages(db *gorm.DB) error {
	usages := []model.CardUsage{
		{
			TransDate: time.Date(2024, 2, 15, 0, 0, 0, 0, time.Local), ProcessStatus: "01",
			ApprovalDatetime: datePtr(time.Date(2024, 2, 15, 14, 30, 0, 0, time.Local)),
			BuyDate:          datePtr(time.Date(2024, 2, 15, 0, 0, 0, 0, time.Local)),
			ChargeDate:       datePtr(time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)),
			CardNo:           "1234-****-****-5678",
			CardOwnerEmpNo:   "12345", CardOwnerEmpName: "홍길동",
			CardOwnerEmpOrgCode: "ORG001", CardOwnerEmpOrgName: "개발팀",
			CardIssuerCode: "CARD01", CardIssuerName: "신한카드",
			ApprovalNo: "APP001", Currency: "KRW",
			SupplyAmt: 45454.55, TaxAmt: 4545.45, TotalAmt: 50000, KrwAmt: 50000,
			DeductibleYn: true,
			SupplierNo:   "SUP001", SupplierName: "스타벅스 강남점",
			IndustryCode: "IND1", IndustryName: "커피전문점", IndustryType: "1",
		},
		{
			TransDate: time.Date(2024, 2, 16, 0, 0, 0, 0, time.Local), ProcessStatus: "01",
			ApprovalDatetime: datePtr(time.Date(2024, 2, 16, 18, 20, 0, 0, time.Local)),
			BuyDate:          datePtr(time.Date(2024, 2, 16, 0, 0, 0, 0, time.Local)),
			ChargeDate:       datePtr(time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)),
			CardNo:           "1234-****-****-5678",
			CardOwnerEmpNo:   "12345", CardOwnerEmpName: "홍길동",
			CardOwnerEmpOrgCode: "ORG001", CardOwnerEmpOrgName: "개발팀",
			CardIssuerCode: "CARD01", CardIssuerName: "신한카드",
			ApprovalNo: "APP002", Currency: "KRW",
			SupplyAmt: 90909.09, TaxAmt: 9090.91, TotalAmt: 100000, KrwAmt: 100000,
			DeductibleYn: true,
			SupplierNo:   "SUP002", SupplierName: "올리브영 역삼점",
			IndustryCode: "IND2", IndustryName: "화장품소매", IndustryType: "2",
		},
		{
			TransDate: time.Date(2024, 2, 17, 0, 0, 0, 0, time.Local), ProcessStatus: "01",
			ApprovalDatetime: datePtr(time.Date(2024, 2, 17, 12, 10, 0, 0, time.Local)),
			BuyDate:          datePtr(time.Date(2024, 2, 17, 0, 0, 0, 0, time.Local)),
			ChargeDate:       datePtr(time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)),
			CardNo:           "1234-****-****-5678",
			CardOwnerEmpNo:   "12345", CardOwnerEmpName: "홍길동",
			CardOwnerEmpOrgCode: "ORG001", CardOwnerEmpOrgName: "개발팀",
			CardIssuerCode: "CARD01", CardIssuerName: "신한카드",
			ApprovalNo: "APP003", Currency: "KRW",
			SupplyAmt: 13636.36, TaxAmt: 1363.64, TotalAmt: 15000, KrwAmt: 15000,
			DeductibleYn: false,
			SupplierNo:   "SUP003", SupplierName: "카카오택시",
			IndustryCode: "IND3", IndustryName: "택시운송", IndustryType: "3",
		},
	}

	for _, usage := range usages {
		if err := db.FirstOrCreate(&usage, model.CardUsage{ApprovalNo: usage.ApprovalNo}).Error; err != nil {
			return err
		}

		// Every ingested card usage gets its card-sourced detail line.
		detail := model.Detail{
			Type:          model.DetailTypeCard,
			CardUsageID:   &usage.ID,
			SettlementAmt: usage.TotalAmt,
			SupplyAmt:     usage.SupplyAmt,
			TaxAmt:        usage.TaxAmt,
			DeductibleYn:  usage.DeductibleYn,
		}
		if err := db.FirstOrCreate(&detail, model.Detail{CardUsageID: &usage.ID}).Error; err != nil {
			return err
		}
	}
	return nil
}
