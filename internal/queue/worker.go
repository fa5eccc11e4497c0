package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

func (q *Queue) HandleAutopilotRunTask(ctx context.Context, task *asynq.Task) error {
	var payload AutopilotRunPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	// Background runs have no listener; progress goes nowhere and the
	// outcome lives on the batch row.
	result := q.autopilot.Run(ctx, payload.ConsultantID, &payload.Run, nil)
	if !result.Success {
		slog.Error("background autopilot run failed",
			"consultant_id", payload.ConsultantID, "errors", result.Errors)
	}

	return nil
}
