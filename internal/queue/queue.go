package queue

import (
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

// EnqueueAutopilotRun queues a run for background execution. Runs are
// serialized per queue so two runs never interleave their planning.
func EnqueueAutopilotRun(asynqClient *asynq.Client, payload AutopilotRunPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeAutopilotRun, taskPayload)

	info, err := asynqClient.Enqueue(task, asynq.MaxRetry(0))
	if err != nil {
		return err
	}

	slog.Info("autopilot run enqueued", "task_id", info.ID, "consultant_id", payload.ConsultantID)
	return nil
}
