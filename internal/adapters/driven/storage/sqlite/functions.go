package sqlite

import (
	"database/sql/driver"
	"strings"

	msqlite "modernc.org/sqlite"

	"github.com/custodia-labs/gsearch/internal/core/domain"
)

// lowerFunc folds case over all of Unicode. SQLite's LOWER only folds ASCII,
// which would disagree with the lower-cased search term.
const lowerFunc = "gs_lower"

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(lowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(domain.FormatValue(v)), nil
	}
}
