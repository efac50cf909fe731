package knowledge

// IndexRepository persists chunk index metadata locally (sqlite). The
// vector collection itself lives in qdrant; this repository only tracks
// what was written there.
type IndexRepository interface {
	SaveRecord(record *IndexRecord) error
	SaveRecords(records []*IndexRecord) error
	CountRecords() (int, error)

	GetSourceFile(path string) (*SourceFile, error)
	SaveSourceFile(file *SourceFile) error

	// ClearAll removes every record, used before a full re-index.
	ClearAll() error
}
