package checks

import (
	"fmt"
	"strings"
	"time"

	"record-compactor/core/database"
	"record-compactor/feature/history"

	"gorm.io/gorm"
)

// CheckDatabase compares the compaction_runs table against the history
// model. A nil db means the ledger is not configured.
func CheckDatabase(db *gorm.DB) CheckResult {
	start := time.Now()
	res := newResult(Database)
	if db == nil {
		return res.skip(start, "history database not configured")
	}
	table := history.CompactionRun{}.TableName()
	res.Metadata["dialect"] = db.Dialector.Name()
	res.Metadata["table"] = table

	missing, err := database.MissingColumns(db, table, history.Columns())
	if err != nil {
		return res.fail(start, fmt.Sprintf("failed to inspect %s: %v", table, err))
	}
	if len(missing) == len(history.Columns()) {
		return res.fail(start, fmt.Sprintf("table %s does not exist", table))
	}
	if len(missing) > 0 {
		res.Metadata["missing_columns"] = strings.Join(missing, ",")
		return res.fail(start, fmt.Sprintf("table %s is missing %d columns", table, len(missing)))
	}
	return res.pass(start, fmt.Sprintf("table %s matches the model", table))
}
