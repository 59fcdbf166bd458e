package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"finance-backoffice/config"
	"finance-backoffice/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	app := fiber.New()
	log := zap.NewNop()
	SetupCodeRoutes(app, db, log)
	SetupMenuRoutes(app, db, log)
	SetupExpenseRoutes(app, db, log)
	SetupMasterRoutes(app, db, log)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestCodeEndpoints_CurrencyScenario(t *testing.T) {
	app, _ := setupApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/code/master",
		fiber.Map{"code": "CURRENCY", "codeName": "통화"})
	require.Equal(t, http.StatusCreated, status)

	// Duplicate master is a conflict.
	status, _ = doJSON(t, app, http.MethodPost, "/api/code/master",
		fiber.Map{"code": "CURRENCY", "codeName": "통화"})
	assert.Equal(t, http.StatusConflict, status)

	// Missing required fields.
	status, _ = doJSON(t, app, http.MethodPost, "/api/code/master", fiber.Map{"code": "X"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/code",
		fiber.Map{"code": "USD", "masterCode": "CURRENCY", "codeName": "달러", "sortOrder": 1})
	require.Equal(t, http.StatusCreated, status)
	status, _ = doJSON(t, app, http.MethodPost, "/api/code",
		fiber.Map{"code": "KRW", "masterCode": "CURRENCY", "codeName": "원", "sortOrder": 0})
	require.Equal(t, http.StatusCreated, status)

	// Listing requires the master code and orders by sortOrder.
	status, _ = doJSON(t, app, http.MethodGet, "/api/code", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := doJSON(t, app, http.MethodGet, "/api/code?masterCode=CURRENCY", nil)
	require.Equal(t, http.StatusOK, status)
	var codes []model.Code
	require.NoError(t, json.Unmarshal(body, &codes))
	require.Len(t, codes, 2)
	assert.Equal(t, "KRW", codes[0].Code)
	assert.Equal(t, "USD", codes[1].Code)

	// Master list reports child counts.
	status, body = doJSON(t, app, http.MethodGet, "/api/code/master", nil)
	require.Equal(t, http.StatusOK, status)
	var masters []struct {
		Code      string `json:"code"`
		CodeCount int    `json:"codeCount"`
	}
	require.NoError(t, json.Unmarshal(body, &masters))
	require.Len(t, masters, 1)
	assert.Equal(t, 2, masters[0].CodeCount)

	// Delete is blocked while children exist.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/code/master/CURRENCY", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/code/KRW", nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodDelete, "/api/code/USD", nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/code/master/CURRENCY", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodDelete, "/api/code/master/CURRENCY", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCodeEndpoints_UpdateMaster(t *testing.T) {
	app, _ := setupApp(t)

	status, _ := doJSON(t, app, http.MethodPost, "/api/code/master",
		fiber.Map{"code": "REGION", "codeName": "지역"})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPut, "/api/code/master/REGION",
		fiber.Map{"codeName": "지역 구분", "isActive": false})
	require.Equal(t, http.StatusOK, status)
	var master model.MasterCode
	require.NoError(t, json.Unmarshal(body, &master))
	assert.Equal(t, "지역 구분", master.CodeName)
	assert.False(t, master.IsActive)

	status, _ = doJSON(t, app, http.MethodPut, "/api/code/master/NOPE",
		fiber.Map{"codeName": "x"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMenuEndpoints_TypeCascade(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/menu",
		fiber.Map{"name": "Admin", "type": "A"})
	require.Equal(t, http.StatusCreated, status)
	var admin model.Menu
	require.NoError(t, json.Unmarshal(body, &admin))

	status, body = doJSON(t, app, http.MethodPost, "/api/menu",
		fiber.Map{"name": "Users", "type": "A", "parentId": admin.ID})
	require.Equal(t, http.StatusCreated, status)
	var users model.Menu
	require.NoError(t, json.Unmarshal(body, &users))

	// name and type are mandatory.
	status, _ = doJSON(t, app, http.MethodPost, "/api/menu", fiber.Map{"name": "NoType"})
	assert.Equal(t, http.StatusBadRequest, status)

	// Self-parenting is rejected.
	status, _ = doJSON(t, app, http.MethodPut, "/api/menu/"+itoa(admin.ID),
		fiber.Map{"name": "Admin", "type": "A", "parentId": admin.ID})
	assert.Equal(t, http.StatusBadRequest, status)

	// Changing the parent's type rewrites the whole subtree.
	status, _ = doJSON(t, app, http.MethodPut, "/api/menu/"+itoa(admin.ID),
		fiber.Map{"name": "Admin", "type": "B"})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/menu", nil)
	require.Equal(t, http.StatusOK, status)
	var menus []struct {
		Name          string `json:"name"`
		Type          string `json:"type"`
		ChildrenCount int    `json:"childrenCount"`
	}
	require.NoError(t, json.Unmarshal(body, &menus))
	require.Len(t, menus, 2)
	for _, menu := range menus {
		assert.Equal(t, "B", menu.Type, "menu %s", menu.Name)
	}

	// Tree endpoint reflects levels.
	status, body = doJSON(t, app, http.MethodGet, "/api/menu/tree?type=B", nil)
	require.Equal(t, http.StatusOK, status)
	var tree []struct {
		Name     string `json:"name"`
		Level    int    `json:"level"`
		Children []struct {
			Name  string `json:"name"`
			Level int    `json:"level"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(body, &tree))
	require.Len(t, tree, 1)
	assert.Equal(t, "Admin", tree[0].Name)
	assert.Equal(t, 0, tree[0].Level)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Users", tree[0].Children[0].Name)
	assert.Equal(t, 1, tree[0].Children[0].Level)

	// Delete parent is blocked while the child exists.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/menu/"+itoa(admin.ID), nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/menu/"+itoa(users.ID), nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodDelete, "/api/menu/"+itoa(admin.ID), nil)
	require.Equal(t, http.StatusOK, status)
}

func TestExpenseEndpoints_DetailLifecycle(t *testing.T) {
	app, db := setupApp(t)

	// A card-sourced line arrives with its usage out of band.
	usage := model.CardUsage{CardNo: "1234", SupplyAmt: 45454.55, TotalAmt: 50000}
	require.NoError(t, db.Create(&usage).Error)
	cardDetail := model.Detail{Type: model.DetailTypeCard, CardUsageID: &usage.ID, SettlementAmt: 50000}
	require.NoError(t, db.Create(&cardDetail).Error)

	status, body := doJSON(t, app, http.MethodPost, "/api/expense/detail",
		fiber.Map{"receiptDate": "2024-02-20", "settlementAmt": 30000, "deductibleYn": true})
	require.Equal(t, http.StatusCreated, status)
	var cashDetail model.Detail
	require.NoError(t, json.Unmarshal(body, &cashDetail))
	assert.Equal(t, model.DetailTypeCash, cashDetail.Type)

	// The unassigned pool holds both lines.
	status, body = doJSON(t, app, http.MethodGet, "/api/expense/detail?groupId=null", nil)
	require.Equal(t, http.StatusOK, status)
	var pool []model.Detail
	require.NoError(t, json.Unmarshal(body, &pool))
	assert.Len(t, pool, 2)

	// Partial edit.
	status, body = doJSON(t, app, http.MethodPatch, "/api/expense/detail/"+itoa(cashDetail.ID),
		fiber.Map{"settlementAmt": 35000})
	require.Equal(t, http.StatusOK, status)
	var patched model.Detail
	require.NoError(t, json.Unmarshal(body, &patched))
	assert.InDelta(t, 35000, patched.SettlementAmt, 0.001)

	// Card lines can never be deleted.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/expense/detail/"+itoa(cardDetail.ID), nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/expense/detail/"+itoa(cashDetail.ID), nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/expense/detail/"+itoa(cashDetail.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestExpenseEndpoints_GroupSaveAndSubmit(t *testing.T) {
	app, db := setupApp(t)

	d1 := model.Detail{Type: model.DetailTypeCash, SettlementAmt: 10000}
	d2 := model.Detail{Type: model.DetailTypeCash, SettlementAmt: 20000}
	require.NoError(t, db.Create(&d1).Error)
	require.NoError(t, db.Create(&d2).Error)

	status, body := doJSON(t, app, http.MethodPost, "/api/expense/group",
		fiber.Map{"status": "SAVE", "title": "", "detailIds": []uint{d1.ID}})
	require.Equal(t, http.StatusCreated, status)
	var group model.Group
	require.NoError(t, json.Unmarshal(body, &group))
	assert.Equal(t, "12345", group.EmpNo) // placeholder identity
	assert.Contains(t, group.Title, "경비정산_")

	// Full replacement on re-save.
	status, _ = doJSON(t, app, http.MethodPut, "/api/expense/group/"+itoa(group.ID),
		fiber.Map{"status": "SAVE", "title": "회식비", "detailIds": []uint{d2.ID}})
	require.Equal(t, http.StatusOK, status)

	var linkedIDs []uint
	require.NoError(t, db.Model(&model.Detail{}).Where("group_id = ?", group.ID).Pluck("id", &linkedIDs).Error)
	assert.Equal(t, []uint{d2.ID}, linkedIDs)

	status, body = doJSON(t, app, http.MethodGet, "/api/expense/group", nil)
	require.Equal(t, http.StatusOK, status)
	var summaries []struct {
		ID               uint    `json:"id"`
		SettlementAmtSum float64 `json:"settlementAmtSum"`
		DetailCount      int     `json:"detailCount"`
	}
	require.NoError(t, json.Unmarshal(body, &summaries))
	require.Len(t, summaries, 1)
	assert.InDelta(t, 20000, summaries[0].SettlementAmtSum, 0.001)
	assert.Equal(t, 1, summaries[0].DetailCount)

	// Bulk submit with a shared posting date.
	status, _ = doJSON(t, app, http.MethodPost, "/api/expense/group/bulk-submit",
		fiber.Map{"groupIds": []uint{group.ID}, "postingDate": "2024-04-01"})
	require.Equal(t, http.StatusOK, status)

	var submitted model.Group
	require.NoError(t, db.First(&submitted, group.ID).Error)
	assert.Equal(t, model.GroupStatusSubmit, submitted.Status)

	// Submitted documents are closed for editing.
	status, _ = doJSON(t, app, http.MethodPut, "/api/expense/group/"+itoa(group.ID),
		fiber.Map{"status": "SAVE", "detailIds": []uint{d2.ID}})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMasterEndpoints_ActiveOnlyAscending(t *testing.T) {
	app, db := setupApp(t)

	require.NoError(t, db.Create(&model.Account{Code: "520200", Name: "여비교통비", IsActive: true}).Error)
	require.NoError(t, db.Create(&model.Account{Code: "520100", Name: "복리후생비", IsActive: true}).Error)
	inactive := model.Account{Code: "520300", Name: "접대비"}
	require.NoError(t, db.Create(&inactive).Error)
	require.NoError(t, db.Model(&inactive).Update("is_active", false).Error)

	status, body := doJSON(t, app, http.MethodGet, "/api/master/account", nil)
	require.Equal(t, http.StatusOK, status)
	var accounts []model.Account
	require.NoError(t, json.Unmarshal(body, &accounts))
	require.Len(t, accounts, 2)
	assert.Equal(t, "520100", accounts[0].Code)
	assert.Equal(t, "520200", accounts[1].Code)

	status, _ = doJSON(t, app, http.MethodPost, "/api/master/wbs",
		fiber.Map{"code": "WBS-1", "name": "신규 구축"})
	assert.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/master/wbs", fiber.Map{"code": "WBS-2"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
