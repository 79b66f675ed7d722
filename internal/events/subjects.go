package events

const (
	SubjectRiskSweep = "plan.insight.risks"

	StreamName   = "FORESIGHT_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectTaskCreated(taskID string) string   { return "plan.task." + taskID + ".created" }
func SubjectTaskUpdated(taskID string) string   { return "plan.task." + taskID + ".updated" }
func SubjectTaskCompleted(taskID string) string { return "plan.task." + taskID + ".completed" }
func SubjectTaskOverdue(taskID string) string   { return "plan.task." + taskID + ".overdue" }
func SubjectTaskDueSoon(taskID string) string   { return "plan.task." + taskID + ".due_soon" }

func SubjectNotificationCreated(notificationID string) string {
	return "plan.notification." + notificationID + ".created"
}
