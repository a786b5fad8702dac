package history

import (
	"reflect"
	"strings"
	"time"

	"record-compactor/core/compactor"
)

// CompactionRun is one row of the compaction ledger.
type CompactionRun struct {
	ID               string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	CreatedAt        time.Time `gorm:"column:created_at;index" json:"created_at"`
	Source           string    `gorm:"column:source;type:varchar(255)" json:"source"`
	Fidelity         string    `gorm:"column:fidelity;type:varchar(16)" json:"fidelity"`
	CodeWidth        int       `gorm:"column:code_width" json:"code_width"`
	Groups           int       `gorm:"column:groups_count" json:"groups"`
	Resources        int       `gorm:"column:resources" json:"resources"`
	ResourcesDropped int       `gorm:"column:resources_dropped" json:"resources_dropped"`
	OriginalSize     int       `gorm:"column:original_size" json:"original_size"`
	CompactedSize    int       `gorm:"column:compacted_size" json:"compacted_size"`
	Ratio            float64   `gorm:"column:ratio" json:"ratio"`
	URLEntries       int       `gorm:"column:url_entries" json:"url_entries"`
	StringEntries    int       `gorm:"column:string_entries" json:"string_entries"`
	UnreversibleKeys int       `gorm:"column:unreversible_keys" json:"unreversible_keys"`
	Format           string    `gorm:"column:format;type:varchar(8)" json:"format,omitempty"`
	ObjectKey        string    `gorm:"column:object_key;type:varchar(512)" json:"object_key,omitempty"`
}

// TableName pins the table name for every dialect.
func (CompactionRun) TableName() string {
	return "compaction_runs"
}

// NewRun summarises an artifact for the ledger.
func NewRun(source string, a *compactor.Artifact) *CompactionRun {
	return &CompactionRun{
		Source:           source,
		Fidelity:         string(a.Fidelity),
		CodeWidth:        int(a.CodeWidth),
		Groups:           len(a.Groups),
		Resources:        a.Stats.ResourcesProcessed,
		ResourcesDropped: a.Stats.ResourcesDropped,
		OriginalSize:     a.Stats.OriginalSize,
		CompactedSize:    a.Stats.CompactedSize,
		Ratio:            a.Stats.CompressionRatio,
		URLEntries:       len(a.Dictionaries.URLs),
		StringEntries:    len(a.Dictionaries.Strings),
		UnreversibleKeys: a.Stats.UnreversibleKeys,
	}
}

// Columns lists the column names declared by the model's gorm tags.
func Columns() []string {
	t := reflect.TypeOf(CompactionRun{})
	cols := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name := gormColumn(t.Field(i).Tag.Get("gorm")); name != "" {
			cols = append(cols, name)
		}
	}
	return cols
}

func gormColumn(tag string) string {
	for _, part := range strings.Split(tag, ";") {
		if name, ok := strings.CutPrefix(part, "column:"); ok {
			return name
		}
	}
	return ""
}
