package queue

import "fmt"

type TaskType string

const (
	TaskTypeComplianceRecheck TaskType = "compliance_recheck"
	TaskTypeNotifyEvent       TaskType = "notify_event"
)

// RecheckDebounceKey is the SETNX key that collapses a burst of saves
// on one content item into a single recheck task.
func RecheckDebounceKey(contentItemID int64) string {
	return fmt.Sprintf("debounce:recheck:%d", contentItemID)
}
