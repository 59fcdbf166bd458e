package service

import (
	"errors"
	"fmt"
	"time"

	"finance-backoffice/internal/apperror"
	"finance-backoffice/internal/model"
	"finance-backoffice/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GroupSummary is a group plus its derived listing aggregates. The sums are
// computed from the currently linked details at read time, never persisted.
type GroupSummary struct {
	model.Group
	SupplyAmtSum     float64 `json:"supplyAmtSum"`
	SettlementAmtSum float64 `json:"settlementAmtSum"`
	DetailCount      int     `json:"detailCount"`
}

// SaveGroupInput is the create-or-replace payload: the target status, the
// document title, and the complete set of detail ids that should belong to
// the document afterwards.
type SaveGroupInput struct {
	GroupID     *uint
	Status      string
	Title       string
	DetailIDs   []uint
	PostingDate *time.Time
	EmpNo       string
	EmpName     string
}

// DetailInput carries the fields of a manually entered cash/receipt line.
type DetailInput struct {
	ReceiptDate    *time.Time `json:"receiptDate"`
	SettlementAmt  float64    `json:"settlementAmt"`
	AccountCode    *string    `json:"accountCode"`
	CostCenterCode *string    `json:"costCenterCode"`
	FundCenterCode *string    `json:"fundCenterCode"`
	WBSCode        *string    `json:"wbsCode"`
	Remark         *string    `json:"remark"`
	DeductibleYn   bool       `json:"deductibleYn"`
}

// ItemResult reports the outcome of one element of a batch operation.
type ItemResult struct {
	ID      uint   `json:"id"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ExpenseService owns the expense document lifecycle: draft/submit saves with
// full-replacement detail linking, derived aggregates, and the batch
// operations, each inside one transaction.
type ExpenseService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewExpenseService(db *gorm.DB, log *zap.Logger) *ExpenseService {
	return &ExpenseService{db: db, log: log}
}

// DefaultTitle is the document title used when the caller leaves it blank.
func DefaultTitle(now time.Time) string {
	return "경비정산_" + now.Format("2006-01-02")
}

// Summarize computes the derived listing aggregates for a group. Card lines
// contribute their CardUsage supply amount; every line contributes its
// settlement amount.
func Summarize(group model.Group) GroupSummary {
	summary := GroupSummary{Group: group, DetailCount: len(group.Details)}
	for _, detail := range group.Details {
		if detail.CardUsage != nil {
			summary.SupplyAmtSum += detail.CardUsage.SupplyAmt
		}
		summary.SettlementAmtSum += detail.SettlementAmt
	}
	return summary
}

func (s *ExpenseService) ListGroups() ([]GroupSummary, error) {
	groups, err := repository.NewExpenseRepository(s.db).ListGroups()
	if err != nil {
		return nil, err
	}
	summaries := make([]GroupSummary, 0, len(groups))
	for _, group := range groups {
		summaries = append(summaries, Summarize(group))
	}
	return summaries, nil
}

func (s *ExpenseService) GetGroup(id uint) (*GroupSummary, error) {
	group, err := repository.NewExpenseRepository(s.db).GetGroup(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("group not found")
		}
		return nil, err
	}
	summary := Summarize(*group)
	return &summary, nil
}

// SaveGroup creates or replaces an expense document. The supplied detail id
// set fully replaces whatever was linked before: rows dropped from the
// selection are unlinked, the selection is linked, nothing is merged. On
// SUBMIT the posting date is stamped on every detail in the selection and the
// approval request time is recorded.
func (s *ExpenseService) SaveGroup(input SaveGroupInput) (*model.Group, error) {
	if input.Status != model.GroupStatusSave && input.Status != model.GroupStatusSubmit {
		return nil, apperror.BadRequest(fmt.Sprintf("status must be %s or %s",
			model.GroupStatusSave, model.GroupStatusSubmit))
	}

	now := time.Now()
	title := input.Title
	if title == "" {
		title = DefaultTitle(now)
	}

	var saved *model.Group
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewExpenseRepository(tx)

		count, err := repo.CountDetails(input.DetailIDs)
		if err != nil {
			return err
		}
		if count != int64(len(input.DetailIDs)) {
			return apperror.BadRequest("selection contains unknown detail ids")
		}

		var group *model.Group
		if input.GroupID == nil {
			group = &model.Group{
				Type:    model.GroupTypeExpense,
				Status:  input.Status,
				Title:   title,
				EmpNo:   input.EmpNo,
				EmpName: input.EmpName,
			}
			if input.Status == model.GroupStatusSubmit {
				group.ApprovalRequestDatetime = &now
			}
			if err := repo.CreateGroup(group); err != nil {
				return err
			}
		} else {
			group, err = repo.GetGroup(*input.GroupID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperror.NotFound("group not found")
				}
				return err
			}
			if group.Status != model.GroupStatusSave {
				return apperror.BadRequest("only SAVE-state groups can be edited")
			}
			fields := map[string]interface{}{"status": input.Status, "title": title}
			if input.Status == model.GroupStatusSubmit {
				fields["approval_request_datetime"] = now
			}
			if err := repo.UpdateGroup(group.ID, fields); err != nil {
				return err
			}
			group.Status = input.Status
			group.Title = title

			if err := repo.UnlinkDetails(group.ID, input.DetailIDs); err != nil {
				return err
			}
		}

		var postingDate *time.Time
		if input.Status == model.GroupStatusSubmit {
			postingDate = input.PostingDate
		}
		if err := repo.LinkDetails(input.DetailIDs, group.ID, postingDate); err != nil {
			return err
		}

		saved = group
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("saved expense group",
		zap.Uint("groupId", saved.ID),
		zap.String("status", saved.Status),
		zap.Int("details", len(input.DetailIDs)))
	return saved, nil
}

// ListDetails returns details linked to a group, or the unassigned pool when
// groupID is nil.
func (s *ExpenseService) ListDetails(groupID *uint) ([]model.Detail, error) {
	repo := repository.NewExpenseRepository(s.db)
	if groupID == nil {
		return repo.ListUnassignedDetails()
	}
	return repo.ListDetailsByGroup(*groupID)
}

// CreateDetail records a manually entered cash/receipt line. Card lines are
// never created here; they arrive with ingested card usages.
func (s *ExpenseService) CreateDetail(input DetailInput) (*model.Detail, error) {
	detail := model.Detail{
		Type:           model.DetailTypeCash,
		ReceiptDate:    input.ReceiptDate,
		SettlementAmt:  input.SettlementAmt,
		AccountCode:    input.AccountCode,
		CostCenterCode: input.CostCenterCode,
		FundCenterCode: input.FundCenterCode,
		WBSCode:        input.WBSCode,
		Remark:         input.Remark,
		DeductibleYn:   input.DeductibleYn,
	}
	if err := repository.NewExpenseRepository(s.db).CreateDetail(&detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *ExpenseService) UpdateDetail(id uint, fields map[string]interface{}) (*model.Detail, error) {
	detail, err := repository.NewExpenseRepository(s.db).UpdateDetail(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("detail not found")
		}
		return nil, err
	}
	return detail, nil
}

// DeleteDetail removes a cash/receipt line. Card-sourced lines can only be
// moved between groups, never deleted.
func (s *ExpenseService) DeleteDetail(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewExpenseRepository(tx)

		detail, err := repo.GetDetail(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("detail not found")
			}
			return err
		}
		if detail.Type != model.DetailTypeCash {
			return apperror.BadRequest("only cash/receipt details can be deleted")
		}
		return repo.DeleteDetail(id)
	})
}

// BulkDeleteDetails deletes a batch of cash/receipt lines atomically. When
// any id is unknown or not deletable the whole batch is rejected and the
// per-item results say which ids failed.
func (s *ExpenseService) BulkDeleteDetails(ids []uint) ([]ItemResult, error) {
	results := make([]ItemResult, 0, len(ids))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewExpenseRepository(tx)

		failed := false
		for _, id := range ids {
			detail, err := repo.GetDetail(id)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				results = append(results, ItemResult{ID: id, Message: "detail not found"})
				failed = true
			case err != nil:
				return err
			case detail.Type != model.DetailTypeCash:
				results = append(results, ItemResult{ID: id, Message: "only cash/receipt details can be deleted"})
				failed = true
			default:
				results = append(results, ItemResult{ID: id, Success: true})
			}
		}
		if failed {
			return apperror.BadRequest("batch contains details that cannot be deleted")
		}

		for _, id := range ids {
			if err := repo.DeleteDetail(id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Mark everything unapplied: the transaction rolled back.
		for i := range results {
			results[i].Success = false
		}
		return results, err
	}
	return results, nil
}

// BulkSubmit submits a batch of SAVE-state groups with one shared posting
// date, atomically. Each group keeps exactly its current detail set; the
// submit transition is the same one SaveGroup applies.
func (s *ExpenseService) BulkSubmit(groupIDs []uint, postingDate *time.Time) ([]ItemResult, error) {
	results := make([]ItemResult, 0, len(groupIDs))
	now := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewExpenseRepository(tx)

		groups := make([]*model.Group, 0, len(groupIDs))
		failed := false
		for _, id := range groupIDs {
			group, err := repo.GetGroup(id)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				results = append(results, ItemResult{ID: id, Message: "group not found"})
				failed = true
			case err != nil:
				return err
			case group.Status != model.GroupStatusSave:
				results = append(results, ItemResult{ID: id, Message: "only SAVE-state groups can be submitted"})
				failed = true
			default:
				groups = append(groups, group)
				results = append(results, ItemResult{ID: id, Success: true})
			}
		}
		if failed {
			return apperror.BadRequest("batch contains groups that cannot be submitted")
		}

		for _, group := range groups {
			detailIDs, err := repo.DetailIDsByGroup(group.ID)
			if err != nil {
				return err
			}
			fields := map[string]interface{}{
				"status":                    model.GroupStatusSubmit,
				"approval_request_datetime": now,
			}
			if err := repo.UpdateGroup(group.ID, fields); err != nil {
				return err
			}
			if err := repo.LinkDetails(detailIDs, group.ID, postingDate); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for i := range results {
			results[i].Success = false
		}
		return results, err
	}

	s.log.Info("bulk submitted expense groups", zap.Int("count", len(groupIDs)))
	return results, nil
}
