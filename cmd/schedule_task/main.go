package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"gymdesk/internal/models"
	"gymdesk/internal/services"
	"gymdesk/internal/tasks"
)

func main() {
	taskName := flag.String("task_name", "", "Name of the task")
	argsStr := flag.String("arguments", "", "JSON arguments for the task")
	dueStr := flag.String("due", "", "Due date (format: 2006-01-02 15:04, or RFC3339)")
	taskType := flag.String("tasktype", "onetime", "Task type (onetime or recurring)")
	recurring := flag.String("recurring", "", "Recurrence rule (RFC 5545 RRULE, e.g. FREQ=DAILY)")
	maxAttempt := flag.Int("max_attempt", 3, "Max attempts")
	dailyReminders := flag.Bool("daily-reminders", false, "Shortcut: enqueue the daily expiry-reminder sweep")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := services.InitDB(dsn)
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}

	if *dailyReminders {
		firstRun := time.Now()
		if *dueStr != "" {
			firstRun = parseDue(*dueStr)
		}
		task, err := tasks.ExpiryReminderTask.CreateDailyTask(firstRun)
		if err != nil {
			log.Fatalf("Failed to build reminder task: %v", err)
		}
		if err := db.Create(task).Error; err != nil {
			log.Fatalf("Failed to create task: %v", err)
		}
		fmt.Printf("Scheduled daily expiry-reminder sweep, task ID %d, first run %s\n", task.ID, task.Due)
		return
	}

	if *taskName == "" || *argsStr == "" || *dueStr == "" {
		fmt.Println("Usage: schedule_task -task_name <name> -arguments <json_args> -due <YYYY-MM-DD HH:MM> [options]")
		fmt.Println("       schedule_task -daily-reminders [-due <YYYY-MM-DD HH:MM>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(*argsStr), &args); err != nil {
		log.Fatalf("Invalid JSON arguments: %v", err)
	}

	due := parseDue(*dueStr)

	var recurringPtr *string
	if *recurring != "" {
		recurringPtr = recurring
	}

	task := models.ScheduledTask{
		TaskName:          *taskName,
		Arguments:         args,
		Due:               due,
		TaskType:          models.ScheduledTaskType(*taskType),
		RecurringInterval: recurringPtr,
		MaxAttempt:        *maxAttempt,
		Status:            models.ScheduledTaskStatusActive,
	}

	if err := db.Create(&task).Error; err != nil {
		log.Fatalf("Failed to create task: %v", err)
	}

	fmt.Printf("Successfully created task ID: %d\n", task.ID)
	fmt.Printf("Task: %s\nDue: %s\nType: %s\n", task.TaskName, task.Due, task.TaskType)
}

// parseDue accepts RFC3339 or a simple local-time layout.
func parseDue(s string) time.Time {
	due, err := time.Parse(time.RFC3339, s)
	if err != nil {
		due, err = time.ParseInLocation("2006-01-02 15:04", s, time.Local)
		if err != nil {
			log.Fatalf("Invalid due date format. Use '2006-01-02 15:04' (local) or RFC3339: %v", err)
		}
	}
	return due
}
