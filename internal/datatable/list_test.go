package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listSpec() *Spec {
	return &Spec{
		Table: "users",
		RowID: "id",
		Fields: []Field{
			{Data: "id", Column: "id", Hidden: true},
			{Data: "username", Column: "username"},
			{Data: "is_active", Column: "is_active", Boolean: true},
		},
	}
}

func listItems() []map[string]any {
	return []map[string]any{
		{"id": 1, "username": "anna", "is_active": true},
		{"id": 2, "username": "Bernd", "is_active": false},
		{"id": 3, "username": "carla", "is_active": true},
		{"id": 4, "username": nil, "is_active": true},
	}
}

func TestRunListSubstringFilter(t *testing.T) {
	payload := listSpec().RunList(listItems(), params(
		"length=-1&columns[0][data]=add&columns[1][data]=id&columns[2][data]=username&columns[2][search][value]=ERN"),
		allowAll)

	assert.Equal(t, 1, payload["recordsTotal"])
	assert.Equal(t, 1, payload["recordsFiltered"])
	assert.Equal(t, []string{"row-2"}, rowIDs(t, payload))
}

func TestRunListBooleanFilter(t *testing.T) {
	payload := listSpec().RunList(listItems(), params(
		"length=-1&order[0][column]=1&columns[0][data]=add&columns[1][data]=id&columns[2][data]=username&columns[3][data]=is_active&columns[3][search][value]=1"),
		allowAll)

	assert.Equal(t, []string{"row-1", "row-3", "row-4"}, rowIDs(t, payload))
}

func TestRunListSortsNilLast(t *testing.T) {
	payload := listSpec().RunList(listItems(), params(
		"length=-1&order[0][column]=2&order[0][dir]=asc"), allowAll)
	assert.Equal(t, []string{"row-1", "row-2", "row-3", "row-4"}, rowIDs(t, payload))

	payload = listSpec().RunList(listItems(), params(
		"length=-1&order[0][column]=2&order[0][dir]=desc"), allowAll)
	assert.Equal(t, []string{"row-3", "row-2", "row-1", "row-4"}, rowIDs(t, payload))
}

func TestRunListPagination(t *testing.T) {
	payload := listSpec().RunList(listItems(), params(
		"start=2&length=2&order[0][column]=1&order[0][dir]=asc"), allowAll)

	require.Len(t, payload["data"], 2)
	assert.Equal(t, 4, payload["recordsTotal"])
	assert.Equal(t, []string{"row-3", "row-4"}, rowIDs(t, payload))
}
