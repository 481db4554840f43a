package database

import (
	"database/sql/driver"
	"strings"
	"sync"

	sqlitedriver "github.com/glebarez/go-sqlite"
)

// unicodeLowerFunc แทน LOWER() ของ SQLite ซึ่งแปลงได้แค่ ASCII
const unicodeLowerFunc = "unicode_lower"

var registerSQLiteFunctionsOnce sync.Once

// registerSQLiteFunctions ต้องเรียกก่อนเปิด connection แรก
// function ที่ register จะมีผลกับ connection ที่เปิดหลังจากนั้นเท่านั้น
func registerSQLiteFunctions() {
	registerSQLiteFunctionsOnce.Do(func() {
		sqlitedriver.MustRegisterDeterministicScalarFunction(unicodeLowerFunc, 1, unicodeLower)
	})
}

func unicodeLower(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
