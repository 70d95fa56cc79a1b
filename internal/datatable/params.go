package datatable

import (
	"fmt"
	"net/url"
	"strconv"
)

// Params are the request parameters of one DataTables draw
type Params struct {
	Draw   int
	Start  int
	Length int

	// OrderColumn indexes the wire columns, including the leading icon column
	OrderColumn int
	OrderDir    string

	// Searches maps wire keys to their column search values
	Searches map[string]string
}

// ParseParams reads the DataTables request format. Unparsable numbers fall
// back to defaults rather than failing the draw.
func ParseParams(values url.Values) Params {
	params := Params{
		Draw:        intParam(values, "draw", 1),
		Start:       intParam(values, "start", 0),
		Length:      intParam(values, "length", 10),
		OrderColumn: intParam(values, "order[0][column]", 0),
		OrderDir:    values.Get("order[0][dir]"),
		Searches:    map[string]string{},
	}

	if params.OrderDir == "" {
		params.OrderDir = "asc"
	}

	for i := 0; ; i++ {
		data := values.Get(fmt.Sprintf("columns[%d][data]", i))
		if data == "" {
			break
		}

		if search := values.Get(fmt.Sprintf("columns[%d][search][value]", i)); search != "" {
			params.Searches[data] = search
		}
	}

	return params
}

func intParam(values url.Values, key string, fallback int) int {
	raw := values.Get(key)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return n
}
