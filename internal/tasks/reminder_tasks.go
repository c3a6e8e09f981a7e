package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"gymdesk/internal/models"
	"gymdesk/internal/services"
)

// reminderDateLayout is how expiry dates are rendered in reminder messages.
const reminderDateLayout = "02 Jan 2006"

// ExpiryReminderArgs carries the sweep's retry bookkeeping. MemberIDs is
// empty on the scheduled run and holds the failed subset on retries.
type ExpiryReminderArgs struct {
	MemberIDs    []uint `json:"member_ids,omitempty"`
	AttemptCount int    `json:"attempt_count"`
}

// ExpiryReminderTaskDef is the daily sweep that messages every member whose
// membership expires within the next week. It runs across all gyms.
type ExpiryReminderTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *ExpiryReminderTaskDef) TaskID() string {
	return "send_expiry_reminders"
}

// CreateDailyTask builds the recurring sweep record, first due at the given
// instant and repeating daily.
func (t *ExpiryReminderTaskDef) CreateDailyTask(firstRun time.Time) (*models.ScheduledTask, error) {
	rule := "FREQ=DAILY"
	return BuildScheduledTask(t.TaskID(), ExpiryReminderArgs{}, firstRun, &rule, models.ScheduledTaskTypeRecurring, 3)
}

// HandleExecution finds expiring members and sends each a WhatsApp reminder.
// A Redis per-member per-day key stops double sends when the worker runs the
// sweep more than once; without Redis configured the sweep still runs, just
// without the dedup guard. Failed sends are rescheduled as a one-time retry
// covering only the failed members.
func (t *ExpiryReminderTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	argsBytes, err := json.Marshal(task.Arguments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal args: %w", err)
	}
	var parsedArgs ExpiryReminderArgs
	if err := json.Unmarshal(argsBytes, &parsedArgs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal args: %w", err)
	}

	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Redis unavailable, sweep runs without dedup: %v", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	now := time.Now()
	roster := services.NewRosterService(db, cache)

	var members []models.Member
	if len(parsedArgs.MemberIDs) > 0 {
		if err := db.Where("id IN ?", parsedArgs.MemberIDs).Find(&members).Error; err != nil {
			return nil, fmt.Errorf("failed to load retry members: %w", err)
		}
	} else {
		members, err = roster.ExpiringMembers(now)
		if err != nil {
			return nil, err
		}
	}

	waha := services.NewWahaService()
	today := now.Format("2006-01-02")

	total := len(members)
	successCount := 0
	skippedCount := 0
	failureCount := 0
	var failures []string
	var failedIDs []uint

	for _, m := range members {
		if cache != nil {
			key := fmt.Sprintf("gymdesk:reminder:%d:%s", m.ID, today)
			acquired, err := cache.SetNX(ctx, key, 1, 48*time.Hour)
			if err == nil && !acquired {
				skippedCount++
				continue
			}
		}

		expiry := m.ExpiryDate.Format(reminderDateLayout)
		if err := waha.SendExpiryReminder(m.Phone, m.Name, expiry); err != nil {
			log.Printf("Failed to send expiry reminder to %s: %v", m.Name, err)
			failureCount++
			failures = append(failures, fmt.Sprintf("%s: %v", m.Name, err))
			failedIDs = append(failedIDs, m.ID)
			continue
		}
		successCount++
	}

	result := map[string]interface{}{
		"total":   total,
		"success": successCount,
		"skipped": skippedCount,
		"failure": failureCount,
	}

	if failureCount > 0 {
		result["errors"] = failures

		attempt := parsedArgs.AttemptCount
		maxRetries := task.MaxAttempt

		if attempt < maxRetries {
			log.Printf("Partial failure: %d reminders failed. Rescheduling for attempt %d", len(failedIDs), attempt+1)

			newArgs := ExpiryReminderArgs{
				MemberIDs:    failedIDs,
				AttemptCount: attempt + 1,
			}
			nextRun := now.Add(5 * time.Minute)

			retryTask, err := BuildScheduledTask(t.TaskID(), newArgs, nextRun, nil, models.ScheduledTaskTypeOneTime, maxRetries)
			if err == nil {
				db.Create(retryTask)
			} else {
				log.Printf("Failed to create retry task: %v", err)
			}
		} else {
			log.Printf("Max attempts (%d) reached for %d failed reminders.", maxRetries, len(failedIDs))
			return result, fmt.Errorf("max attempts reached, failed to remind %d members", len(failedIDs))
		}
	}

	return result, nil
}

// ExpiryReminderTask is the singleton instance of ExpiryReminderTaskDef
var ExpiryReminderTask = &ExpiryReminderTaskDef{}
