package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// FailedJobRecord is the GORM model persisted when a job exhausts retries.
// Auto-migrated by UseDB at startup; pruned by the scheduler.
type FailedJobRecord struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	JobType  string    `gorm:"size:255;not null;index"`
	Payload  string    `gorm:"type:text;not null"`
	Error    string    `gorm:"type:text"`
	Attempts int       `gorm:"not null;default:0"`
	FailedAt time.Time `gorm:"autoCreateTime"`
}

func (FailedJobRecord) TableName() string { return "failed_jobs" }

// failedJobDB is the optional DB backend for persisting failed jobs.
// Set via UseDB() — nil means failures are only logged.
var failedJobDB *gorm.DB

// UseDB configures the queue to persist failed jobs to the database.
// Call once at boot (after database.Connect()):
//
//	queue.UseDB(database.DB)
func UseDB(db *gorm.DB) {
	failedJobDB = db
	db.AutoMigrate(&FailedJobRecord{}) //nolint:errcheck
}

// PruneFailed deletes failed-job records older than the retention window.
// Returns the number of rows removed.
func PruneFailed(olderThan time.Duration) (int64, error) {
	if failedJobDB == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-olderThan)
	res := failedJobDB.Where("failed_at < ?", cutoff).Delete(&FailedJobRecord{})
	return res.RowsAffected, res.Error
}

func (m *Manager) persistFailed(job Job, typeName string, lastErr error, attempts int) {
	if failedJobDB == nil {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		payload = []byte(fmt.Sprintf(`{"error": "could not marshal: %v"}`, err))
	}

	record := FailedJobRecord{
		JobType:  typeName,
		Payload:  string(payload),
		Error:    lastErr.Error(),
		Attempts: attempts,
		FailedAt: time.Now(),
	}

	if err := failedJobDB.Create(&record).Error; err != nil {
		fmt.Printf("queue: failed to persist failed job %s: %v\n", typeName, err)
	}
}
