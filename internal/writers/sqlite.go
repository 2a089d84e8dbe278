package writers

import (
	"errors"
	"fmt"
	"io"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fquack/internal/scan"
)

func init() { Register("sqlite", StartSQLiteWriter) }

// ReadRow is the SQLite row model; the table is "reads".
type ReadRow struct {
	ID         uint   `gorm:"primaryKey"`
	SourceFile string `gorm:"index"`
	Metadata   string
	Sequence   string
	Quality    string
}

func (ReadRow) TableName() string { return "reads" }

const sqliteInsertBatch = 500

// StartSQLiteWriter appends rows to the reads table of o.DBPath, one
// transaction per produced batch. out is not used.
func StartSQLiteWriter(_ io.Writer, o Options) (chan<- scan.Batch, <-chan error) {
	return start(o.BufSize, func(in <-chan scan.Batch) error {
		if o.DBPath == "" {
			return errors.New("sqlite output requires --db")
		}
		db, err := gorm.Open(sqlite.Open(o.DBPath), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return fmt.Errorf("failed to open SQLite database %s: %w", o.DBPath, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer func() { _ = sqlDB.Close() }()

		if err := db.AutoMigrate(&ReadRow{}); err != nil {
			return fmt.Errorf("migrate reads table: %w", err)
		}
		for b := range in {
			rows := make([]ReadRow, b.Chunk.Len())
			for i := range rows {
				m, s, q := b.Chunk.Row(i)
				rows[i] = ReadRow{SourceFile: b.File, Metadata: m, Sequence: s, Quality: q}
			}
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.CreateInBatches(rows, sqliteInsertBatch).Error
			}); err != nil {
				return fmt.Errorf("insert into %s: %w", o.DBPath, err)
			}
		}
		return sqlDB.Close()
	})
}
