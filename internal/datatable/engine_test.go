package datatable

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type shopRow struct {
	ID    uint `gorm:"primaryKey"`
	Name  *string
	Score *int
}

func (shopRow) TableName() string {
	return "shops"
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&shopRow{}))

	rows := []shopRow{
		{ID: 1, Name: strPtr("alpha-shop"), Score: intPtr(2)},
		{ID: 2, Name: strPtr("beta-shop"), Score: intPtr(5)},
		{ID: 3, Name: nil, Score: intPtr(2)},
		{ID: 4, Name: strPtr("gamma"), Score: nil},
		{ID: 5, Name: strPtr(""), Score: intPtr(3)},
	}
	require.NoError(t, db.Create(&rows).Error)

	return db
}

func testSpec() *Spec {
	return &Spec{
		Table: "shops",
		PK:    "shops.id",
		RowID: "id",
		Fields: []Field{
			{Data: "id", Column: "shops.id", Hidden: true},
			{Data: "name", Column: "shops.name", Regex: true},
			{Data: "score", Column: "shops.score", Regex: true},
		},
	}
}

func allowAll([]string) bool { return true }

func params(query string) Params {
	values, _ := url.ParseQuery(query)
	return ParseParams(values)
}

func rowIDs(t *testing.T, payload map[string]any) []string {
	t.Helper()

	data, ok := payload["data"].([]map[string]any)
	require.True(t, ok)

	ids := make([]string, 0, len(data))
	for _, row := range data {
		ids = append(ids, row["DT_RowId"].(string))
	}

	return ids
}

func TestRunGlobFilter(t *testing.T) {
	db := testDB(t)

	payload, err := testSpec().Run(db.Model(&shopRow{}), params(
		"draw=2&length=-1&columns[0][data]=add&columns[1][data]=id&columns[2][data]=name&columns[2][search][value]=*shop&columns[3][data]=score"),
		allowAll)
	require.NoError(t, err)

	assert.Equal(t, 2, payload["draw"])
	assert.Equal(t, []string{"row-1", "row-2"}, rowIDs(t, payload))
}

func TestRunEmptyAndNonEmptyFilters(t *testing.T) {
	db := testDB(t)
	spec := testSpec()

	payload, err := spec.Run(db.Model(&shopRow{}), params(
		"length=-1&columns[0][data]=add&columns[1][data]=id&columns[2][data]=name&columns[2][search][value]=!"),
		allowAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"row-3", "row-5"}, rowIDs(t, payload))

	payload, err = spec.Run(db.Model(&shopRow{}), params(
		"length=-1&columns[0][data]=add&columns[1][data]=id&columns[2][data]=name&columns[2][search][value]=*"),
		allowAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"row-1", "row-2", "row-4"}, rowIDs(t, payload))
}

func TestRunSetFilterRange(t *testing.T) {
	db := testDB(t)

	payload, err := testSpec().Run(db.Model(&shopRow{}), params(
		"length=-1&columns[0][data]=add&columns[1][data]=id&columns[2][data]=name&columns[3][data]=score&columns[3][search][value]=[2-3]"),
		allowAll)
	require.NoError(t, err)

	assert.Equal(t, []string{"row-1", "row-3", "row-5"}, rowIDs(t, payload))
}

func TestRunNegatedSetFilter(t *testing.T) {
	db := testDB(t)

	payload, err := testSpec().Run(db.Model(&shopRow{}), params(
		"length=-1&columns[0][data]=add&columns[1][data]=id&columns[3][data]=score&columns[3][search][value]=![2,3]"),
		allowAll)
	require.NoError(t, err)

	// NULL folds to '' which is also not in the set
	assert.Equal(t, []string{"row-2", "row-4"}, rowIDs(t, payload))
}

func TestRunOrdersNullsLastBothDirections(t *testing.T) {
	db := testDB(t)
	spec := testSpec()

	payload, err := spec.Run(db.Model(&shopRow{}), params(
		"length=-1&order[0][column]=3&order[0][dir]=asc"), allowAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"row-1", "row-3", "row-5", "row-2", "row-4"}, rowIDs(t, payload))

	payload, err = spec.Run(db.Model(&shopRow{}), params(
		"length=-1&order[0][column]=3&order[0][dir]=desc"), allowAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"row-2", "row-5", "row-1", "row-3", "row-4"}, rowIDs(t, payload))
}

func TestRunCountsMatchFilteredSet(t *testing.T) {
	db := testDB(t)

	payload, err := testSpec().Run(db.Model(&shopRow{}), params(
		"start=0&length=1&columns[0][data]=add&columns[1][data]=id&columns[2][data]=name&columns[2][search][value]=*shop"),
		allowAll)
	require.NoError(t, err)

	assert.Equal(t, int64(2), payload["recordsTotal"])
	assert.Equal(t, int64(2), payload["recordsFiltered"])
	assert.Len(t, payload["data"], 1)
}

func TestRunPagination(t *testing.T) {
	db := testDB(t)
	spec := testSpec()

	payload, err := spec.Run(db.Model(&shopRow{}), params(
		"start=2&length=2&order[0][column]=1&order[0][dir]=asc"), allowAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"row-3", "row-4"}, rowIDs(t, payload))

	payload, err = spec.Run(db.Model(&shopRow{}), params("length=-1"), allowAll)
	require.NoError(t, err)
	assert.Len(t, payload["data"], 5)
}

func TestRunRendersEmptyCellsAsDash(t *testing.T) {
	db := testDB(t)

	payload, err := testSpec().Run(db.Model(&shopRow{}), params(
		"length=-1&order[0][column]=1&order[0][dir]=asc"), allowAll)
	require.NoError(t, err)

	data := payload["data"].([]map[string]any)
	assert.Equal(t, "alpha-shop", data[0]["name"])
	assert.Equal(t, "-", data[2]["name"])
	assert.Equal(t, "-", data[4]["name"])
	assert.Equal(t, "-", data[3]["score"])
	assert.Equal(t, "", data[0]["add"])
}

func TestRunRendersPermittedActionsOnly(t *testing.T) {
	db := testDB(t)

	spec := testSpec()
	spec.Actions = []Action{
		{Name: "edit", Href: "/db/shop/%v/edit/", Label: "Edit", Icon: `<i class="icon-edit"></i>`},
		{Name: "delete", Href: "/db/shop/%v/delete/", Label: "Delete", Permissions: []string{"website.delete"}, Danger: true},
	}

	denied := func(perms []string) bool { return len(perms) == 0 }

	payload, err := spec.Run(db.Model(&shopRow{}), params("length=1&order[0][column]=1"), denied)
	require.NoError(t, err)

	row := payload["data"].([]map[string]any)[0]
	assert.Contains(t, row["edit"], `href="/db/shop/1/edit/"`)
	assert.Contains(t, row["edit"], `<i class="icon-edit"></i>`)
	assert.NotContains(t, row, "delete")
}

func TestColumnsManifest(t *testing.T) {
	spec := testSpec()
	spec.Actions = []Action{
		{Name: "edit", Permissions: []string{"website.change"}},
	}

	columns := spec.Columns(allowAll)
	require.Len(t, columns, 5)
	assert.Equal(t, "add", columns[0]["data"])
	assert.Equal(t, "name", columns[2]["data"])
	assert.Equal(t, "edit", columns[4]["data"])

	columns = spec.Columns(func(perms []string) bool { return len(perms) == 0 })
	assert.Len(t, columns, 4)
}

func TestAnnotationColumn(t *testing.T) {
	plain := Annotation{Components: []string{"a", "', '", "b"}}
	assert.Equal(t, "a || ', ' || b", plain.Column())

	linked := Annotation{LinkedJoin: "r.id", Components: []string{"r.name"}}
	assert.Equal(t, "CASE WHEN r.id IS NULL THEN '' ELSE r.name END", linked.Column())
}

func TestParseParamsDefaults(t *testing.T) {
	p := params("")
	assert.Equal(t, 1, p.Draw)
	assert.Equal(t, 0, p.Start)
	assert.Equal(t, 10, p.Length)
	assert.Equal(t, "asc", p.OrderDir)
	assert.Empty(t, p.Searches)

	p = params(fmt.Sprintf("draw=%d&start=20&length=50&order[0][column]=4&order[0][dir]=desc", 7))
	assert.Equal(t, 7, p.Draw)
	assert.Equal(t, 20, p.Start)
	assert.Equal(t, 50, p.Length)
	assert.Equal(t, 4, p.OrderColumn)
	assert.Equal(t, "desc", p.OrderDir)
}
