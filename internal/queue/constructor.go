package queue

import (
	"github.com/momentumhq/contentpilot/internal/service"
	"github.com/momentumhq/contentpilot/internal/transfer"
)

type Queue struct {
	autopilot service.AutopilotService
}

func NewQueue(autopilot service.AutopilotService) *Queue {
	return &Queue{
		autopilot: autopilot,
	}
}

const TaskTypeAutopilotRun = "autopilot:run"

type AutopilotRunPayload struct {
	ConsultantID int64                 `json:"consultant_id"`
	Run          transfer.AutopilotRun `json:"run"`
}
