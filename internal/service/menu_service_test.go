package service

import (
	"testing"

	"finance-backoffice/config"
	"finance-backoffice/internal/apperror"
	"finance-backoffice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func uintPtr(v uint) *uint { return &v }

func TestBuildTree(t *testing.T) {
	menus := []model.Menu{
		{ID: 1, Name: "Admin", SortOrder: 1, Type: "A"},
		{ID: 2, Name: "Users", SortOrder: 2, Type: "A", ParentID: uintPtr(1)},
		{ID: 3, Name: "Codes", SortOrder: 1, Type: "A", ParentID: uintPtr(1)},
		{ID: 4, Name: "Expense", SortOrder: 0, Type: "B"},
		{ID: 5, Name: "Deep", SortOrder: 0, Type: "A", ParentID: uintPtr(2)},
	}

	roots := BuildTree(menus)

	require.Len(t, roots, 2)
	assert.Equal(t, "Expense", roots[0].Name) // sortOrder 0 before 1
	assert.Equal(t, "Admin", roots[1].Name)
	assert.Equal(t, 0, roots[0].Level)
	assert.Equal(t, 0, roots[1].Level)

	admin := roots[1]
	require.Len(t, admin.Children, 2)
	assert.Equal(t, "Codes", admin.Children[0].Name) // sortOrder 1 before 2
	assert.Equal(t, "Users", admin.Children[1].Name)
	assert.Equal(t, 1, admin.Children[0].Level)

	users := admin.Children[1]
	require.Len(t, users.Children, 1)
	assert.Equal(t, "Deep", users.Children[0].Name)
	assert.Equal(t, 2, users.Children[0].Level)
}

func TestBuildTree_OrphanBecomesRoot(t *testing.T) {
	menus := []model.Menu{
		{ID: 1, Name: "Lost", SortOrder: 0, ParentID: uintPtr(99)},
	}

	roots := BuildTree(menus)

	require.Len(t, roots, 1)
	assert.Equal(t, "Lost", roots[0].Name)
	assert.Equal(t, 0, roots[0].Level)
}

func TestBuildTree_SiblingTieBrokenByName(t *testing.T) {
	menus := []model.Menu{
		{ID: 1, Name: "Bravo", SortOrder: 5},
		{ID: 2, Name: "Alpha", SortOrder: 5},
	}

	roots := BuildTree(menus)

	require.Len(t, roots, 2)
	assert.Equal(t, "Alpha", roots[0].Name)
	assert.Equal(t, "Bravo", roots[1].Name)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "expense-list", Slugify("Expense List"))
	assert.Equal(t, "admin", Slugify("  Admin  "))
	assert.Equal(t, "a-b-c", Slugify("A  B   C"))
}

func TestMenuService_Create_RequiresNameAndType(t *testing.T) {
	svc := NewMenuService(setupDB(t), zap.NewNop())

	_, err := svc.Create(MenuInput{Name: "", Type: "A"})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)

	_, err = svc.Create(MenuInput{Name: "Admin", Type: ""})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestMenuService_Create_DerivesFilePath(t *testing.T) {
	svc := NewMenuService(setupDB(t), zap.NewNop())

	root, err := svc.Create(MenuInput{Name: "Expense List", Type: "B"})
	require.NoError(t, err)
	require.NotNil(t, root.FilePath)
	assert.Equal(t, "/expense-list", *root.FilePath)

	child, err := svc.Create(MenuInput{Name: "New Report", Type: "B", ParentID: &root.ID})
	require.NoError(t, err)
	require.NotNil(t, child.FilePath)
	assert.Equal(t, "/expense-list/new-report", *child.FilePath)
}

func TestMenuService_Create_KeepsExplicitFilePath(t *testing.T) {
	svc := NewMenuService(setupDB(t), zap.NewNop())

	explicit := "/custom/location"
	menu, err := svc.Create(MenuInput{Name: "Admin", Type: "A", FilePath: &explicit})
	require.NoError(t, err)
	require.NotNil(t, menu.FilePath)
	assert.Equal(t, explicit, *menu.FilePath)
}

func TestMenuService_Update_CascadesTypeToDescendants(t *testing.T) {
	db := setupDB(t)
	svc := NewMenuService(db, zap.NewNop())

	admin, err := svc.Create(MenuInput{Name: "Admin", Type: "A"})
	require.NoError(t, err)
	users, err := svc.Create(MenuInput{Name: "Users", Type: "A", ParentID: &admin.ID})
	require.NoError(t, err)
	_, err = svc.Create(MenuInput{Name: "Roles", Type: "A", ParentID: &users.ID})
	require.NoError(t, err)

	_, err = svc.Update(admin.ID, MenuInput{Name: "Admin", Type: "B"})
	require.NoError(t, err)

	var menus []model.Menu
	require.NoError(t, db.Find(&menus).Error)
	require.Len(t, menus, 3)
	for _, menu := range menus {
		assert.Equal(t, "B", menu.Type, "menu %s should inherit the new type", menu.Name)
	}
}

func TestMenuService_Update_RejectsSelfParent(t *testing.T) {
	svc := NewMenuService(setupDB(t), zap.NewNop())

	menu, err := svc.Create(MenuInput{Name: "Admin", Type: "A"})
	require.NoError(t, err)

	_, err = svc.Update(menu.ID, MenuInput{Name: "Admin", Type: "A", ParentID: &menu.ID})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestMenuService_Update_RejectsDeepCycle(t *testing.T) {
	svc := NewMenuService(setupDB(t), zap.NewNop())

	a, err := svc.Create(MenuInput{Name: "A", Type: "A"})
	require.NoError(t, err)
	b, err := svc.Create(MenuInput{Name: "B", Type: "A", ParentID: &a.ID})
	require.NoError(t, err)
	c, err := svc.Create(MenuInput{Name: "C", Type: "A", ParentID: &b.ID})
	require.NoError(t, err)

	// Moving A under its grandchild would close a cycle.
	_, err = svc.Update(a.ID, MenuInput{Name: "A", Type: "A", ParentID: &c.ID})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestMenuService_Update_NotFound(t *testing.T) {
	svc := NewMenuService(setupDB(t), zap.NewNop())

	_, err := svc.Update(999, MenuInput{Name: "Ghost", Type: "A"})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestMenuService_Delete_BlockedWhileChildrenExist(t *testing.T) {
	db := setupDB(t)
	svc := NewMenuService(db, zap.NewNop())

	admin, err := svc.Create(MenuInput{Name: "Admin", Type: "A"})
	require.NoError(t, err)
	child, err := svc.Create(MenuInput{Name: "Users", Type: "A", ParentID: &admin.ID})
	require.NoError(t, err)

	err = svc.Delete(admin.ID)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)

	// Nothing was removed.
	var count int64
	require.NoError(t, db.Model(&model.Menu{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// Leaves delete bottom-up.
	require.NoError(t, svc.Delete(child.ID))
	require.NoError(t, svc.Delete(admin.ID))
}

func TestMenuService_Delete_NotFound(t *testing.T) {
	svc := NewMenuService(setupDB(t), zap.NewNop())

	err := svc.Delete(42)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestMenuService_Tree_FiltersByType(t *testing.T) {
	svc := NewMenuService(setupDB(t), zap.NewNop())

	_, err := svc.Create(MenuInput{Name: "Admin", Type: "A"})
	require.NoError(t, err)
	_, err = svc.Create(MenuInput{Name: "Expense", Type: "B"})
	require.NoError(t, err)

	tree, err := svc.Tree("A")
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "Admin", tree[0].Name)
}
